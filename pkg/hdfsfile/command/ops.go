// Package command implements hdfsfile.FilesystemOps on top of the hdfs
// command-line client ("hdfs dfs -<op> ...").
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

const (
	// DefaultCommand is the hdfs client used when none is configured.
	DefaultCommand = "/bin/hdfs"
	// DefaultTimeout bounds a single backend invocation.
	DefaultTimeout = 2 * time.Minute
	// DefaultTouchFlag creates a zero-length file. Hadoop 3 clients also
	// offer "-touch", which refreshes the times of non-empty files.
	DefaultTouchFlag = "-touchz"

	statSeparator = "[SEP]"
	statFormat    = "%F" + statSeparator + "%u" + statSeparator + "%g" + statSeparator + "%r"
)

// Option configures an Ops.
type Option func(*Ops)

// WithRunner replaces the process runner.
func WithRunner(r Runner) Option {
	return func(o *Ops) {
		o.runner = r
	}
}

// WithLogger sets the logger used for backend invocations.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Ops) {
		o.logger = logger
	}
}

// WithTimeout bounds each backend invocation, whichever runner is used.
// Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(o *Ops) {
		o.timeout = d
	}
}

// WithTouchFlag selects the dfs subcommand used for touch.
func WithTouchFlag(flag string) Option {
	return func(o *Ops) {
		o.touchFlag = flag
	}
}

// Ops drives the hdfs client. The zero value is not usable; use New.
type Ops struct {
	command   string
	runner    Runner
	logger    zerolog.Logger
	timeout   time.Duration
	touchFlag string
}

var _ hdfsfile.FilesystemOps = (*Ops)(nil)

// New returns Ops invoking the client at command (DefaultCommand when empty).
func New(command string, opts ...Option) *Ops {
	if command == "" {
		command = DefaultCommand
	}
	o := &Ops{
		command:   command,
		runner:    ExecRunner{},
		logger:    hdfsfile.DefaultLogger(),
		timeout:   DefaultTimeout,
		touchFlag: DefaultTouchFlag,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Command returns the configured client path.
func (o *Ops) Command() string {
	return o.command
}

// Stat queries type, owner, group and replication in one invocation. A
// non-zero exit is read as "no such file or directory".
func (o *Ops) Stat(ctx context.Context, path string) (hdfsfile.Status, error) {
	args := []string{"dfs", "-stat", statFormat, path}
	o.logger.Debug().Str("op", "stat").Strs("args", args).Msg("running hdfs")

	stdout, stderr, err := o.run(ctx, args)
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			o.logger.Debug().Str("path", path).Int("code", exitErr.Code).Msg("stat failed, assuming absent")
			return hdfsfile.AbsentStatus(), nil
		}
		return hdfsfile.Status{}, &hdfsfile.TransportError{Op: "stat", Path: path, Stderr: stderr, Err: err}
	}

	status, err := ParseStat(stdout)
	if err != nil {
		return hdfsfile.Status{}, &hdfsfile.TransportError{Op: "stat", Path: path, Stderr: stderr, Err: err}
	}
	return status, nil
}

// Mkdir runs "dfs -mkdir [-p] path".
func (o *Ops) Mkdir(ctx context.Context, path string, parent bool) error {
	return o.dfs(ctx, "mkdir", path, flagIf(parent, "-p"))
}

// Remove runs "dfs -rm [-r] path".
func (o *Ops) Remove(ctx context.Context, path string, recurse bool) error {
	return o.dfs(ctx, "rm", path, flagIf(recurse, "-r"))
}

// Touch runs the configured touch subcommand.
func (o *Ops) Touch(ctx context.Context, path string) error {
	return o.dfs(ctx, strings.TrimPrefix(o.touchFlag, "-"), path)
}

// Chown runs "dfs -chown [-R] owner[:group] path".
func (o *Ops) Chown(ctx context.Context, path, owner, group string, recurse bool) error {
	if owner == "" && group == "" {
		return fmt.Errorf("chown %s: owner or group required", path)
	}
	return o.dfs(ctx, "chown", path, flagIf(recurse, "-R"), hdfsfile.ChownTarget(owner, group))
}

// Chmod runs "dfs -chmod [-R] mode path".
func (o *Ops) Chmod(ctx context.Context, path, mode string, recurse bool) error {
	return o.dfs(ctx, "chmod", path, flagIf(recurse, "-R"), mode)
}

// SetRep runs "dfs -setrep factor path". The client applies it to every
// file below a directory.
func (o *Ops) SetRep(ctx context.Context, path string, factor int) error {
	return o.dfs(ctx, "setrep", path, strconv.Itoa(factor))
}

// dfs runs "<command> dfs -<op> [args...] <path>", dropping empty args.
func (o *Ops) dfs(ctx context.Context, op, path string, args ...string) error {
	argv := []string{"dfs", "-" + op}
	for _, a := range args {
		if a != "" {
			argv = append(argv, a)
		}
	}
	argv = append(argv, path)

	o.logger.Debug().Str("op", op).Strs("args", argv).Msg("running hdfs")
	_, stderr, err := o.run(ctx, argv)
	if err != nil {
		o.logger.Warn().Str("op", op).Str("path", path).Err(err).Msg("hdfs command failed")
		return &hdfsfile.TransportError{Op: op, Path: path, Stderr: stderr, Err: err}
	}
	return nil
}

// run invokes the client once, bounded by the configured timeout.
func (o *Ops) run(ctx context.Context, args []string) (string, string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	return o.runner.Run(ctx, o.command, args...)
}

func flagIf(set bool, flag string) string {
	if set {
		return flag
	}
	return ""
}

// ParseStat parses the output of "dfs -stat %F[SEP]%u[SEP]%g[SEP]%r".
func ParseStat(out string) (hdfsfile.Status, error) {
	fields := strings.Split(strings.TrimSpace(out), statSeparator)
	if len(fields) != 4 {
		return hdfsfile.Status{}, fmt.Errorf("unexpected stat output %q: want 4 fields, got %d", out, len(fields))
	}

	state, err := NormalizeState(fields[0])
	if err != nil {
		return hdfsfile.Status{}, err
	}
	replication, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return hdfsfile.Status{}, fmt.Errorf("invalid replication %q: %w", fields[3], err)
	}
	return hdfsfile.Status{
		State:       state,
		Owner:       fields[1],
		Group:       fields[2],
		Replication: replication,
	}, nil
}

// NormalizeState maps the client's %F labels to file or directory.
func NormalizeState(label string) (hdfsfile.State, error) {
	switch strings.TrimSpace(label) {
	case "regular file", "regular empty file", "file":
		return hdfsfile.StateFile, nil
	case "directory":
		return hdfsfile.StateDirectory, nil
	default:
		return "", fmt.Errorf("unsupported file type %q", label)
	}
}
