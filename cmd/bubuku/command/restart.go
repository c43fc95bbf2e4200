package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"

	"github.com/mlogix/bubuku/zk"
)

type Restart struct {
	Ui  cli.Ui
	Cmd string

	brokerId string
}

func (this *Restart) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("restart", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.brokerId, "broker", "", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	ens := openEnsemble()
	defer ens.Close()

	brokerId := this.brokerId
	if brokerId == "" {
		var err error
		if brokerId, err = localBrokerId(ens); err != nil {
			this.Ui.Error(err.Error())
			return 1
		}
	}

	registered, err := ens.BrokerRegistered(brokerId)
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}
	if !registered {
		this.Ui.Error(fmt.Sprintf("broker %s is not registered, cannot restart", brokerId))
		return 1
	}

	if err = ens.RegisterAction(brokerId, map[string]interface{}{
		"name": zk.ActionRestart,
	}); err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	this.Ui.Info(fmt.Sprintf("restart of broker %s scheduled", brokerId))
	return
}

func (*Restart) Synopsis() string {
	return "Schedule a safe restart of a kafka broker"
}

func (this *Restart) Help() string {
	help := fmt.Sprintf(`
Usage: %s restart [options]

    Schedule a safe restart of a kafka broker

    The restart is executed by the broker's own agent once partition
    leadership has moved off the broker.

Options:

    -broker <id>
      Broker id to restart. Defaults to the broker on this host
`, this.Cmd)
	return strings.TrimSpace(help)
}
