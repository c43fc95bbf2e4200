package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"

	"github.com/mlogix/bubuku/zk"
)

type Rebalance struct {
	Ui  cli.Ui
	Cmd string

	brokerId string
}

func (this *Rebalance) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("rebalance", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.brokerId, "broker", "", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	ens := openEnsemble()
	defer ens.Close()

	queue := zk.ActionGlobalQueue
	if this.brokerId != "" {
		queue = this.brokerId
	}

	if err := ens.RegisterAction(queue, map[string]interface{}{
		"name": zk.ActionRebalance,
	}); err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	this.Ui.Info(fmt.Sprintf("rebalance scheduled on queue %s", queue))
	return
}

func (*Rebalance) Synopsis() string {
	return "Schedule a partition rebalance campaign"
}

func (this *Rebalance) Help() string {
	help := fmt.Sprintf(`
Usage: %s rebalance [options]

    Schedule a partition rebalance campaign

Options:

    -broker <id>
      Broker to run the rebalance on. By default any free broker takes it
`, this.Cmd)
	return strings.TrimSpace(help)
}
