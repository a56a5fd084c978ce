package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func newStatCmd(opts *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stat [path]",
		Short: "Print the normalized status of a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(stdout, output)
			path := args[0]
			if err := (hdfsfile.DesiredSpec{Path: path}).Validate(); err != nil {
				return out.fail(err)
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return out.fail(err)
			}
			ops := cfg.Ops(logger(cfg, stderr))

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := ops.Stat(ctx, path)
			if err != nil {
				return out.fail(err)
			}
			return out.status(path, st)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or text")

	return cmd
}
