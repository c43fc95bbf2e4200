package command

import (
	"flag"
	"fmt"
	"strings"

	"github.com/funkygao/gocli"

	"github.com/mlogix/bubuku/zk"
)

type Migrate struct {
	Ui  cli.Ui
	Cmd string

	from     string
	to       string
	shrink   bool
	brokerId string
}

func (this *Migrate) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("migrate", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.from, "from", "", "")
	cmdFlags.StringVar(&this.to, "to", "", "")
	cmdFlags.BoolVar(&this.shrink, "shrink", false, "")
	cmdFlags.StringVar(&this.brokerId, "broker", "", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	if this.from == "" || this.to == "" {
		this.Ui.Error("-from and -to are required")
		this.Ui.Output(this.Help())
		return 2
	}

	ens := openEnsemble()
	defer ens.Close()

	queue := zk.ActionGlobalQueue
	if this.brokerId != "" {
		queue = this.brokerId
	}

	if err := ens.RegisterAction(queue, map[string]interface{}{
		"name":   zk.ActionMigrate,
		"from":   strings.Split(this.from, ","),
		"to":     strings.Split(this.to, ","),
		"shrink": this.shrink,
	}); err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	this.Ui.Info(fmt.Sprintf("migration %s -> %s scheduled on queue %s",
		this.from, this.to, queue))
	return
}

func (*Migrate) Synopsis() string {
	return "Schedule replacing brokers with others for all partitions"
}

func (this *Migrate) Help() string {
	help := fmt.Sprintf(`
Usage: %s migrate -from <ids> -to <ids> [options]

    Schedule replacing brokers with others for all partitions

Options:

    -from <id,id...>
      Brokers to migrate partitions from

    -to <id,id...>
      Brokers to migrate partitions to

    -shrink
      Drop the replaced brokers from partition assignment

    -broker <id>
      Broker to execute the migration on
`, this.Cmd)
	return strings.TrimSpace(help)
}
