// Package main is the entry point for the lazyfind launcher.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/chmouel/lazyfind/internal/buildinfo"
	"github.com/chmouel/lazyfind/internal/config"
	"github.com/chmouel/lazyfind/internal/dispatch"
	"github.com/chmouel/lazyfind/internal/log"
	"github.com/chmouel/lazyfind/internal/models"
	"github.com/chmouel/lazyfind/internal/selector"
	"github.com/chmouel/lazyfind/internal/session"
	"github.com/chmouel/lazyfind/internal/workspace"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes. Cancellation is not a failure but must stay distinguishable
// from a successful selection.
const (
	exitCodeError    = 1
	exitCodeCanceled = 130
)

func main() {
	buildinfo.Set(version, commit, date)
	buildinfo.Enrich()

	cliApp := &urfavecli.App{
		Name:                 "lazyfind",
		Usage:                "Browse files, text, commits and changed files with fzf, ripgrep and bat",
		ArgsUsage:            "[files|grep|commits|status]",
		Version:              buildinfo.String(),
		EnableBashCompletion: true,

		Flags: globalFlags(),

		Commands: []*urfavecli.Command{
			completionCommand(),
		},

		Before: func(c *urfavecli.Context) error {
			// --completion is an early-exit flag: print the script and do
			// nothing interactive
			if c.Bool("completion") {
				_, _ = os.Stdout.Write(bashCompletion)
				os.Exit(0)
			}
			return nil
		},

		Action: runSession,

		BashComplete: completeModes,
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(exitCodeError)
	}
}

// runSession is the default action: resolve the environment, then hand
// control to the session loop until a selection is made or abandoned.
func runSession(c *urfavecli.Context) error {
	if debugLog := c.String("debug-log"); debugLog != "" {
		expanded, err := config.ExpandPath(debugLog)
		if err != nil {
			expanded = debugLog
		}
		if err := log.SetFile(expanded); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", expanded, err)
		}
	}

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if overrides := c.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return finish(urfavecli.Exit(fmt.Sprintf("Error applying config overrides: %v", err), exitCodeError))
		}
	}

	if c.String("debug-log") == "" {
		if cfg.DebugLog != "" {
			if err := log.SetFile(cfg.DebugLog); err != nil {
				fmt.Fprintf(os.Stderr, "Error opening debug log file from config %q: %v\n", cfg.DebugLog, err)
			}
		} else {
			_ = log.SetFile("")
		}
	}

	if c.Bool("no-history") {
		cfg.History = false
	}

	if c.NArg() > 1 {
		return finish(urfavecli.Exit(fmt.Sprintf("too many arguments: %v", c.Args().Slice()), exitCodeError))
	}
	mode, err := models.ParseMode(c.Args().First())
	if err != nil {
		return finish(urfavecli.Exit(err.Error(), exitCodeError))
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return finish(urfavecli.Exit("lazyfind: the interactive session requires a terminal", exitCodeError))
	}

	if err := selector.CheckTools(cfg); err != nil {
		return finish(urfavecli.Exit(fmt.Sprintf("lazyfind: %v", err), exitCodeError))
	}

	// run relative to the repository root so candidate paths stay short
	// and consistent; outside a repository the current directory is kept
	cwd, err := os.Getwd()
	if err != nil {
		return finish(urfavecli.Exit(fmt.Sprintf("lazyfind: %v", err), exitCodeError))
	}
	root := workspace.FindRoot(cwd)
	if root != cwd {
		if err := os.Chdir(root); err != nil {
			log.Printf("staying in %s: %v", cwd, err)
		}
	}

	inEditor := workspace.InEditorTerminal()
	dispatcher := dispatch.New(inEditor, workspace.ResolveEditor(cfg.Editor))
	sel := selector.NewFzf(cfg.FzfPath, cfg.Keys)

	sess, err := session.New(cfg, sel, dispatcher, mode, inEditor)
	if err != nil {
		return finish(urfavecli.Exit(fmt.Sprintf("lazyfind: %v", err), exitCodeError))
	}

	runErr := sess.Run(context.Background())
	switch {
	case runErr == nil:
		return finish(nil)
	case errors.Is(runErr, session.ErrCanceled):
		return finish(urfavecli.Exit("", exitCodeCanceled))
	default:
		return finish(urfavecli.Exit(fmt.Sprintf("lazyfind: %v", runErr), exitCodeError))
	}
}

// finish closes the debug log before the error (and its exit code) is
// handed back to urfave/cli.
func finish(err error) error {
	if cerr := log.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing debug log: %v\n", cerr)
	}
	return err
}
