package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iainh/baton/internal/config"
	"github.com/iainh/baton/internal/winlog"
)

// buildRootCmd wires the CLI flags into cfg and returns the root command.
// dispatchFn is called from RunE once argument parsing succeeds, indirected
// so tests can parse flags without actually connecting anywhere.
func buildRootCmd(cfg *config.Config, dispatchFn func(config.Config) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "baton <target>",
		Short:         "Relay data between stdin/stdout and Windows named pipes",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			cfg.Target = cmdArgs[0]
			winlog.Init(cfg.Verbose)
			return dispatchFn(*cfg)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.Poll, "poll", "p", false, "poll every 200ms until the named pipe exists and is not busy")
	flags.BoolVarP(&cfg.LimitedPoll, "limited-poll", "l", false, "when polling, limit attempts to 300 (~60 seconds)")
	flags.BoolVarP(&cfg.SendZero, "send-zero", "s", false, "send a 0-byte message to the peer after EOF on stdin")
	flags.BoolVar(&cfg.ExitOnPipeEOF, "ep", false, "exit immediately on EOF when reading from the peer")
	flags.BoolVar(&cfg.ExitOnStdinEOF, "ei", false, "exit immediately on EOF when reading from stdin")
	flags.BoolVar(&cfg.Bg, "bg", false, "hide the console window and run in the background")
	flags.BoolVarP(&cfg.Assuan, "assuan", "a", false, "treat the target as an Assuan rendezvous file (for GnuPG)")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "enable verbose output on stderr for debugging")

	return cmd
}

// run builds and executes the root command, translating a returned error
// into the "baton error: " diagnostic on stderr and the process's exit
// code.
func run(args []string) int {
	var cfg config.Config
	cmd := buildRootCmd(&cfg, dispatch)
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "baton error: %s\n", err)
		return 1
	}
	return 0
}
