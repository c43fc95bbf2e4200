package zk

import (
	"testing"

	"github.com/funkygao/assert"
)

func TestDecodeAction(t *testing.T) {
	action, err := decodeAction(ActionGlobalQueue, "action-0000000007",
		[]byte(`{"name":"migrate","from":["1"],"to":["2"],"shrink":true}`))
	assert.Equal(t, nil, err)
	assert.Equal(t, ActionMigrate, action.Name)
	assert.Equal(t, ActionGlobalQueue, action.Queue)
	assert.Equal(t, "action-0000000007", action.Znode)
	assert.Equal(t, true, action.Payload["shrink"])
}

func TestDecodeActionGarbage(t *testing.T) {
	_, err := decodeAction(ActionGlobalQueue, "action-0000000001", []byte(`{{`))
	assert.Equal(t, true, err != nil)
}
