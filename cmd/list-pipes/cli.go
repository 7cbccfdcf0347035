package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iainh/baton/internal/pipesenum"
	"github.com/iainh/baton/internal/winlog"
)

func run(args []string) int {
	var filter string
	var verbose bool
	var showPath bool

	cmd := &cobra.Command{
		Use:           "list-pipes",
		Short:         "List Windows named pipes with optional glob pattern filtering",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			winlog.Init(verbose)

			names, err := enumerate()
			if err != nil {
				return fmt.Errorf("failed to enumerate Windows named pipes: %w", err)
			}

			filtered, err := pipesenum.Filter(names, filter)
			if err != nil {
				return fmt.Errorf("invalid glob pattern for --filter %q: %w", filter, err)
			}

			for _, name := range filtered {
				if showPath {
					fmt.Fprintf(cmd.OutOrStdout(), "\\\\.\\pipe\\%s\n", name)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&filter, "filter", "f", "", "glob pattern to filter pipe names (e.g. \"docker_*\", \"gpg-agent\")")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging for debugging")
	flags.BoolVarP(&showPath, "path", "p", false, "output full pipe paths instead of just names")

	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "list-pipes error: %s\n", err)
		return 1
	}
	return 0
}
