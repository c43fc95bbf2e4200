package command

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/Shopify/sarama"
	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/color"
	"github.com/ryanuber/columnize"

	"github.com/mlogix/bubuku/zk"
)

type Brokers struct {
	Ui  cli.Ui
	Cmd string

	probe bool
}

func (this *Brokers) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("brokers", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.BoolVar(&this.probe, "probe", false, "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	ens := openEnsemble()
	defer ens.Close()

	ids, err := ens.LiveBrokerIds()
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}
	if len(ids) == 0 {
		this.Ui.Warn("no live brokers")
		return
	}

	lines := []string{"Id|Host|Port|Ver|Uptime"}
	for _, id := range ids {
		b, err := ens.Broker(id)
		if err != nil {
			this.Ui.Error(fmt.Sprintf("%s: %v", id, err))
			continue
		}

		lines = append(lines, fmt.Sprintf("%s|%s|%d|%d|%s",
			id, b.Host, b.Port, b.Version,
			time.Since(zk.TimestampToTime(b.Timestamp))))
	}
	this.Ui.Output(columnize.SimpleFormat(lines))

	if this.probe {
		this.probeCluster(ens)
	}
	return
}

// probeCluster talks the kafka protocol to the live brokers, which
// catches brokers that are registered but not serving.
func (this *Brokers) probeCluster(ens *zk.Ensemble) {
	brokerList, err := ens.BrokerList()
	if err != nil {
		this.Ui.Error(err.Error())
		return
	}

	kfk, err := sarama.NewClient(brokerList, sarama.NewConfig())
	if err != nil {
		this.Ui.Output(color.Red("probe %+v: %v", brokerList, err))
		return
	}
	defer kfk.Close()

	topics, err := kfk.Topics()
	if err != nil {
		this.Ui.Output(color.Red("topics: %v", err))
		return
	}

	partitions := 0
	for _, topic := range topics {
		p, err := kfk.Partitions(topic)
		if err != nil {
			this.Ui.Output(color.Yellow("%s: %v", topic, err))
			continue
		}
		partitions += len(p)
	}

	this.Ui.Output(color.Green("ok, %d topics, %d partitions served",
		len(topics), partitions))
}

func (*Brokers) Synopsis() string {
	return "Print live brokers of the supervised cluster"
}

func (this *Brokers) Help() string {
	help := fmt.Sprintf(`
Usage: %s brokers [options]

    Print live brokers of the supervised cluster

Options:

    -probe
      Also probe the brokers over the kafka protocol
`, this.Cmd)
	return strings.TrimSpace(help)
}
