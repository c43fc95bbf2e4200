package main

import (
	"fmt"
	"os"

	"github.com/funkygao/gocli"

	"github.com/mlogix/bubuku"
	"github.com/mlogix/bubuku/config"
)

func main() {
	config.LoadFromHome()

	app := os.Args[0]
	c := cli.NewCLI(app, fmt.Sprintf("bubuku %s (%s@%s)",
		bubuku.Version, bubuku.BuildId, bubuku.BuiltAt))
	c.Args = os.Args[1:]
	c.Commands = commands
	c.HelpFunc = func(m map[string]cli.CommandFactory) string {
		return fmt.Sprintf("kafka broker supervisor and cluster action console\n\n%s",
			cli.BasicHelpFunc(app)(m))
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	} else if c.IsVersion() {
		os.Exit(0)
	}

	os.Exit(exitCode)
}
