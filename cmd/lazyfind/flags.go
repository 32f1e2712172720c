package main

import (
	"fmt"

	"github.com/chmouel/lazyfind/internal/models"
	urfavecli "github.com/urfave/cli/v2"
)

func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "config-file",
			Aliases: []string{"c"},
			Usage:   "Path to the configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override a configuration value (lf.key=value), repeatable",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Write debug output to the given file",
		},
		&urfavecli.BoolFlag{
			Name:  "no-history",
			Usage: "Do not read or write per-mode query history",
		},
		&urfavecli.BoolFlag{
			Name:  "completion",
			Usage: "Print the bash completion script and exit",
		},
	}
}

// completeModes feeds the shell completion machinery: mode names first,
// then subcommands and flags.
func completeModes(c *urfavecli.Context) {
	for _, m := range models.AllModes() {
		fmt.Fprintln(c.App.Writer, m.String())
	}
	for _, cmd := range c.App.Commands {
		if cmd.Hidden {
			continue
		}
		fmt.Fprintln(c.App.Writer, cmd.Name)
	}
	for _, f := range c.App.Flags {
		for _, name := range f.Names() {
			if len(name) == 1 {
				fmt.Fprintf(c.App.Writer, "-%s\n", name)
			} else {
				fmt.Fprintf(c.App.Writer, "--%s\n", name)
			}
		}
	}
}
