package command

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/funkygao/gocli"
	simplejson "github.com/funkygao/go-simplejson"
	"github.com/funkygao/gorequest"
	"github.com/ryanuber/columnize"

	"github.com/mlogix/bubuku/config"
	"github.com/mlogix/bubuku/zk"
)

type Actions struct {
	Ui  cli.Ui
	Cmd string

	brokerId string
	delZnode string
	queue    string
}

func (this *Actions) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("actions", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.brokerId, "broker", "", "")
	cmdFlags.StringVar(&this.delZnode, "delete", "", "")
	cmdFlags.StringVar(&this.queue, "queue", zk.ActionGlobalQueue, "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	ens := openEnsemble()
	defer ens.Close()

	if this.delZnode != "" {
		// drop a wedged entry without executing it, e.g. a restart the
		// agent keeps postponing while its broker still leads partitions
		action := zk.Action{Queue: this.queue, Znode: this.delZnode}
		if err := ens.DeleteAction(action); err != nil {
			this.Ui.Error(err.Error())
			return 1
		}

		this.Ui.Info(fmt.Sprintf("deleted %s/%s", action.Queue, action.Znode))
		return
	}

	ids, err := ens.LiveBrokerIds()
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	lines := []string{"Broker|Host|Queue|Action|Znode"}
	for _, id := range ids {
		if this.brokerId != "" && this.brokerId != id {
			continue
		}

		b, err := ens.Broker(id)
		if err != nil {
			this.Ui.Error(fmt.Sprintf("%s: %v", id, err))
			continue
		}

		for _, row := range this.fetchQueue(b.Host) {
			lines = append(lines, fmt.Sprintf("%s|%s|%s", id, b.Host, row))
		}
	}

	if len(lines) > 1 {
		this.Ui.Output(columnize.SimpleFormat(lines))
	}
	return
}

// fetchQueue asks one agent for its pending actions, returning
// "queue|action|znode" rows.
func (this *Actions) fetchQueue(host string) []string {
	url := fmt.Sprintf("http://%s:%d/api/controller/queue", host, config.HealthPort())
	request := gorequest.New().Timeout(time.Second * 5)
	resp, body, errs := request.Get(url).End()
	if len(errs) > 0 {
		this.Ui.Error(fmt.Sprintf("%s: %+v", url, errs))
		return nil
	}
	if resp.StatusCode != 200 {
		this.Ui.Error(fmt.Sprintf("%s: %s", url, resp.Status))
		return nil
	}

	js, err := simplejson.NewJson([]byte(body))
	if err != nil {
		this.Ui.Error(err.Error())
		return nil
	}

	var rows []string
	for i := 0; i < len(js.MustArray()); i++ {
		action := js.GetIndex(i)
		rows = append(rows, fmt.Sprintf("%s|%s|%s",
			action.Get("queue").MustString(),
			action.Get("name").MustString(),
			action.Get("znode").MustString()))
	}
	return rows
}

func (*Actions) Synopsis() string {
	return "List or delete pending actions on broker agents"
}

func (this *Actions) Help() string {
	help := fmt.Sprintf(`
Usage: %s actions [options]

    List pending actions on broker agents

Options:

    -broker <id>
      Only ask the agent of this broker

    -delete <znode>
      Delete a pending action instead of listing

    -queue <global|broker id>
      Queue the -delete znode lives in, defaults to global
`, this.Cmd)
	return strings.TrimSpace(help)
}
