package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/hdfsfile/internal/config"
	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath  string
	logLevel    string
	verbose     int
	hdfsCommand string
}

// run executes the CLI with args and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errExit) {
			fmt.Fprintf(stderr, "hdfsfile: %v\n", err) //nolint:errcheck
		}
		return 1
	}
	return 0
}

// newRootCmd creates the root command with all subcommands.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "hdfsfile",
		Short: "Converge a distributed filesystem path to a declared state",
		Long: `hdfsfile inspects a path in a Hadoop-compatible filesystem and issues the
minimal set of hdfs dfs commands needed to reach the declared state
(file, directory, absent or touch) with the requested owner, group, mode
and replication factor. It reports whether anything changed and supports
a check mode that only reports what would change.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"path to the TOML config file (default: $XDG_CONFIG_HOME/hdfsfile/config.toml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "",
		"log level: trace, debug, info, warn or error (default from config)")
	root.PersistentFlags().CountVarP(&opts.verbose, "verbose", "v",
		"raise log verbosity (-v info, -vv debug, -vvv trace); --log-level wins")
	root.PersistentFlags().StringVar(&opts.hdfsCommand, "hdfs", "",
		"path to the hdfs client (default from config, then /bin/hdfs)")
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		newApplyCmd(opts, stdout, stderr),
		newPlanCmd(opts, stdout, stderr),
		newStatCmd(opts, stdout, stderr),
		newVersionCmd(stdout),
	)
	return root
}

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  `Print the version number of hdfsfile`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "hdfsfile %s (commit: %s, built: %s)\n", version, commit, date) //nolint:errcheck
		},
	}
}

// loadConfig reads the configuration and applies flag overrides. The
// default config file may be missing; an explicit one may not.
func (o *globalOptions) loadConfig() (*config.Config, error) {
	path, allowMissing := o.configPath, false
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path, allowMissing = p, true
	}
	cfg, err := config.Load(path, allowMissing)
	if err != nil {
		return nil, err
	}
	if o.hdfsCommand != "" {
		cfg.HDFSCommand = o.hdfsCommand
	}
	switch {
	case o.logLevel != "":
		cfg.LogLevel = o.logLevel
	case o.verbose > 0:
		cfg.LogLevel = hdfsfile.LevelForVerbosity(o.verbose).String()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// logger builds the stderr logger for cfg.
func logger(cfg *config.Config, stderr io.Writer) zerolog.Logger {
	level, err := cfg.Level()
	if err != nil {
		level = zerolog.WarnLevel
	}
	return hdfsfile.NewLogger(stderr, level)
}
