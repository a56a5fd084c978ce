package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func newPlanCmd(opts *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		pf     paramFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the commands apply would run",
		Long:  "Query the path once and list the actions needed to reach the declared state, without running them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(stdout, output)

			params, err := pf.resolve(cmd.Flags())
			if err != nil {
				return out.fail(err)
			}
			spec, err := params.Spec()
			if err != nil {
				return out.fail(err)
			}
			method, err := params.MethodOrDefault()
			if err != nil {
				return out.fail(err)
			}
			cfg, err := opts.loadConfig()
			if err != nil {
				return out.fail(err)
			}
			ops, err := hdfsfile.OpenOps(method, true, func() (hdfsfile.FilesystemOps, error) {
				return cfg.Ops(logger(cfg, stderr)), nil
			})
			if err != nil {
				return out.fail(err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			plan, err := hdfsfile.PlanFor(ctx, spec, ops)
			if err != nil {
				return out.fail(err)
			}
			return out.plan(plan)
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or text")

	return cmd
}
