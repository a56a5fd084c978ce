package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/hdfsfile/internal/config"
	"github.com/arthur-debert/hdfsfile/internal/pathlock"
	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func newApplyCmd(opts *globalOptions, stdout, stderr io.Writer) *cobra.Command {
	var (
		pf      paramFlags
		check   bool
		output  string
		lock    bool
		lockDir string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Converge a path to the declared state",
		Long: `Apply inspects the path once and runs the hdfs commands needed to reach the
declared state. With --check nothing is modified but the result still
reports whether a change would happen.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newPrinter(stdout, output)

			params, err := pf.resolve(cmd.Flags())
			if err != nil {
				return out.fail(err)
			}
			check = check || params.Check

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
			log := logger(cfg, stderr)

			ops, err := hdfsfile.OpenOps(method, check, func() (hdfsfile.FilesystemOps, error) {
				return cfg.Ops(log), nil
			})
			if err != nil {
				return out.fail(err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if lock || lockDir != "" || cfg.LockDir != "" {
				l, err := acquireLock(ctx, resolveLockDir(lockDir, cfg), spec.Path, cfg.Timeout.Duration)
				if err != nil {
					return out.fail(err)
				}
				defer l.Unlock() //nolint:errcheck // released on exit anyway
			}

			res, err := hdfsfile.Reconcile(ctx, spec, ops)
			if err != nil {
				log.Debug().Err(err).Str("path", spec.Path).Msg("reconcile failed")
				return out.fail(err)
			}

			log.Info().
				Str("path", spec.Path).
				Str("state", string(spec.State)).
				Bool("changed", res.Changed).
				Bool("check", res.DryRun).
				Int("actions", len(res.Actions)).
				Msg("reconciled")
			return out.result(spec, res)
		},
	}

	pf.register(cmd.Flags())
	cmd.Flags().BoolVar(&check, "check", false, "report what would change without modifying anything")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or text")
	cmd.Flags().BoolVar(&lock, "lock", false, "hold a local lock on the path while applying")
	cmd.Flags().StringVar(&lockDir, "lock-dir", "", "directory for lock files (implies --lock)")

	return cmd
}

// acquireLock waits at most timeout for the lock on target.
func acquireLock(ctx context.Context, dir, target string, timeout time.Duration) (*pathlock.Lock, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return pathlock.Acquire(ctx, dir, target)
}

// resolveLockDir picks the flag value, then the config, then a temp dir.
func resolveLockDir(flagDir string, cfg *config.Config) string {
	switch {
	case flagDir != "":
		return flagDir
	case cfg.LockDir != "":
		return cfg.LockDir
	default:
		return filepath.Join(os.TempDir(), "hdfsfile-locks")
	}
}
