package zk

import (
	"encoding/json"
	"sort"

	simplejson "github.com/funkygao/go-simplejson"
	"github.com/samuel/go-zookeeper/zk"
)

// Action names understood across the cluster. Payloads may carry
// arbitrary extra fields, so decoding stays loosely typed.
const (
	ActionRestart   = "restart"
	ActionRebalance = "rebalance"
	ActionMigrate   = "migrate"
)

// Action is one pending entry in a broker's (or the global) campaign
// queue under /bubuku/actions.
type Action struct {
	Queue   string
	Znode   string
	Name    string
	Payload map[string]interface{}
}

func decodeAction(queue, znode string, data []byte) (Action, error) {
	js, err := simplejson.NewJson(data)
	if err != nil {
		return Action{}, err
	}

	return Action{
		Queue:   queue,
		Znode:   znode,
		Name:    js.Get("name").MustString(),
		Payload: js.MustMap(),
	}, nil
}

// RegisterAction enqueues an action for a single broker, or for any
// free broker when queue is ActionGlobalQueue. The payload must carry
// a "name" key.
func (this *Ensemble) RegisterAction(queue string, payload map[string]interface{}) error {
	if err := this.connectIfNeeded(); err != nil {
		return err
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	root := this.actionQueuePath(queue)
	if err = this.mkdirRecursive(root); err != nil {
		return err
	}

	_, err = this.createSequentialZnode(root+"/action-", data)
	return err
}

// Actions lists the pending entries of one queue in enqueue order.
func (this *Ensemble) Actions(queue string) ([]Action, error) {
	children, err := this.Children(this.actionQueuePath(queue))
	if err != nil {
		return nil, err
	}

	sort.Strings(children) // sequence znodes sort in enqueue order
	r := make([]Action, 0, len(children))
	for _, znode := range children {
		data, err := this.Get(this.actionPath(queue, znode))
		if err == zk.ErrNoNode {
			// consumed by another agent between list and read
			continue
		}
		if err != nil {
			return nil, err
		}

		action, err := decodeAction(queue, znode, data)
		if err != nil {
			return nil, err
		}
		r = append(r, action)
	}
	return r, nil
}

// DeleteAction removes a consumed (or abandoned) queue entry.
func (this *Ensemble) DeleteAction(action Action) error {
	return this.deleteZnode(this.actionPath(action.Queue, action.Znode))
}
