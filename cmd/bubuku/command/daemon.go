package command

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/funkygao/gocli"
	"github.com/funkygao/golib/signal"
	log "github.com/funkygao/log4go"

	"github.com/mlogix/bubuku"
	"github.com/mlogix/bubuku/agent"
	"github.com/mlogix/bubuku/broker"
	"github.com/mlogix/bubuku/config"
)

type Daemon struct {
	Ui  cli.Ui
	Cmd string

	logFile string
}

func (this *Daemon) Run(args []string) (exitCode int) {
	cmdFlags := flag.NewFlagSet("daemon", flag.ContinueOnError)
	cmdFlags.Usage = func() { this.Ui.Output(this.Help()) }
	cmdFlags.StringVar(&this.logFile, "log", "stdout", "")
	if err := cmdFlags.Parse(args); err != nil {
		return 2
	}

	this.setupLogging()

	ens := openEnsemble()
	defer ens.Close()

	props, err := config.NewKafkaProperties(config.SettingsTemplate(), config.SettingsFile())
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	resolver, err := broker.NewResolver(config.IdPolicy(), ens, props)
	if err != nil {
		this.Ui.Error(err.Error())
		return 1
	}

	manager := broker.NewManager(config.KafkaHome(), ens, resolver, props,
		broker.NewExecLauncher())
	a := agent.New(ens, manager, config.HealthPort())

	signal.RegisterHandler(func(sig os.Signal) {
		log.Info("bubuku[%s] got signal: %s", bubuku.BuildId, strings.ToUpper(sig.String()))
		a.Stop()
	}, syscall.SIGINT, syscall.SIGTERM)

	log.Info("bubuku[%s] supervising kafka at %s", bubuku.BuildId, config.KafkaHome())
	a.Run()
	log.Info("bubuku[%s] bye!", bubuku.BuildId)
	log.Close()

	return
}

func (this *Daemon) setupLogging() {
	level := log.ToLogLevel(config.LogLevel(), log.INFO)
	log.SetLevel(level)

	if this.logFile == "stdout" {
		log.AddFilter("stdout", level, log.NewConsoleLogWriter())
	} else {
		log.DeleteFilter("stdout")

		filer := log.NewFileLogWriter(this.logFile, true, false, 0644)
		filer.SetRotateDaily(true)
		filer.SetFormat("[%d %T] [%L] (%S) %M")
		log.AddFilter("file", level, filer)
	}
}

func (*Daemon) Synopsis() string {
	return "Run the kafka supervisor agent on this host"
}

func (this *Daemon) Help() string {
	help := fmt.Sprintf(`
Usage: %s daemon [options]

    Run the kafka supervisor agent on this host

Options:

    -log <file>
      Log to a rotated file instead of stdout
`, this.Cmd)
	return strings.TrimSpace(help)
}
