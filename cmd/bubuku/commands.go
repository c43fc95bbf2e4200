package main

import (
	"os"

	"github.com/funkygao/gocli"

	"github.com/mlogix/bubuku/cmd/bubuku/command"
)

var commands map[string]cli.CommandFactory

func init() {
	ui := &cli.ColoredUi{
		Ui: &cli.BasicUi{
			Writer:      os.Stdout,
			Reader:      os.Stdin,
			ErrorWriter: os.Stderr,
		},
		OutputColor: cli.UiColorNone,
		InfoColor:   cli.UiColorGreen,
		ErrorColor:  cli.UiColorRed,
		WarnColor:   cli.UiColorYellow,
	}
	cmd := os.Args[0]

	commands = map[string]cli.CommandFactory{
		"daemon": func() (cli.Command, error) {
			return &command.Daemon{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"restart": func() (cli.Command, error) {
			return &command.Restart{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"rebalance": func() (cli.Command, error) {
			return &command.Rebalance{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"migrate": func() (cli.Command, error) {
			return &command.Migrate{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"actions": func() (cli.Command, error) {
			return &command.Actions{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},

		"brokers": func() (cli.Command, error) {
			return &command.Brokers{
				Ui:  ui,
				Cmd: cmd,
			}, nil
		},
	}
}
