package main

import (
	_ "embed"
	"fmt"

	urfavecli "github.com/urfave/cli/v2"
)

//go:embed templates/bash_completion.bash
var bashCompletion []byte

//go:embed templates/zsh_completion.zsh
var zshCompletion []byte

func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Print a shell completion script",
		ArgsUsage: "[bash|zsh]",
		Action: func(c *urfavecli.Context) error {
			shell := c.Args().First()
			switch shell {
			case "bash", "":
				_, err := c.App.Writer.Write(bashCompletion)
				return err
			case "zsh":
				_, err := c.App.Writer.Write(zshCompletion)
				return err
			default:
				return fmt.Errorf("unsupported shell %q (expected bash or zsh)", shell)
			}
		},
		BashComplete: func(c *urfavecli.Context) {
			fmt.Fprintln(c.App.Writer, "bash")
			fmt.Fprintln(c.App.Writer, "zsh")
		},
	}
}
