package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

// FakeDFSStateEnv names the variable holding the path of the JSON file that
// persists the namespace between fake hdfs invocations.
const FakeDFSStateEnv = "FAKE_HDFS_STATE"

// RunFakeDFS emulates "hdfs dfs -<op> ..." over a FakeOps namespace stored
// as JSON at statePath. It returns the process exit code.
func RunFakeDFS(args []string, stdout, stderr io.Writer, statePath string) int {
	if statePath == "" {
		fmt.Fprintf(stderr, "fake hdfs: %s is not set\n", FakeDFSStateEnv) //nolint:errcheck
		return 2
	}
	if len(args) < 3 || args[0] != "dfs" || !strings.HasPrefix(args[1], "-") {
		fmt.Fprintln(stderr, "usage: hdfs dfs -<op> [flags] [args] <path>") //nolint:errcheck
		return 2
	}

	f, err := LoadFakeOps(statePath)
	if err != nil {
		fmt.Fprintf(stderr, "fake hdfs: %v\n", err) //nolint:errcheck
		return 2
	}

	op := strings.TrimPrefix(args[1], "-")
	rest := args[2:]
	flags := map[string]bool{}
	for len(rest) > 1 && strings.HasPrefix(rest[0], "-") && len(rest[0]) == 2 {
		flags[rest[0]] = true
		rest = rest[1:]
	}
	p := rest[len(rest)-1]
	operands := rest[:len(rest)-1]

	ctx := context.Background()
	switch op {
	case "stat":
		if len(operands) != 1 {
			return usage(stderr, op)
		}
		st, _ := f.Stat(ctx, p)
		if st.State == hdfsfile.StateAbsent {
			fmt.Fprintf(stderr, "stat: `%s': No such file or directory\n", p) //nolint:errcheck
			return 1
		}
		fmt.Fprintln(stdout, formatStat(operands[0], f.Get(p))) //nolint:errcheck
		return 0
	case "mkdir":
		err = f.Mkdir(ctx, p, flags["-p"])
	case "rm":
		err = f.Remove(ctx, p, flags["-r"] || flags["-R"])
	case "touchz", "touch":
		err = f.Touch(ctx, p)
	case "chown":
		if len(operands) != 1 {
			return usage(stderr, op)
		}
		owner, group, _ := strings.Cut(operands[0], ":")
		err = f.Chown(ctx, p, owner, group, flags["-R"])
	case "chmod":
		if len(operands) != 1 {
			return usage(stderr, op)
		}
		err = f.Chmod(ctx, p, operands[0], flags["-R"])
	case "setrep":
		if len(operands) != 1 {
			return usage(stderr, op)
		}
		factor, convErr := strconv.Atoi(operands[0])
		if convErr != nil {
			fmt.Fprintf(stderr, "setrep: Illegal replication, a positive integer expected\n") //nolint:errcheck
			return 1
		}
		err = f.SetRep(ctx, p, factor)
	default:
		fmt.Fprintf(stderr, "-%s: Unknown command\n", op) //nolint:errcheck
		return 1
	}

	if err != nil {
		var te *hdfsfile.TransportError
		if errors.As(err, &te) {
			fmt.Fprintln(stderr, te.Stderr) //nolint:errcheck
		} else {
			fmt.Fprintln(stderr, err) //nolint:errcheck
		}
		return 1
	}
	if err := SaveFakeOps(statePath, f); err != nil {
		fmt.Fprintf(stderr, "fake hdfs: %v\n", err) //nolint:errcheck
		return 2
	}
	return 0
}

// LoadFakeOps reads a namespace written by SaveFakeOps. A missing file
// yields an empty namespace.
func LoadFakeOps(statePath string) (*FakeOps, error) {
	f := NewFakeOps()
	data, err := os.ReadFile(statePath)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading state: %w", err)
	}
	if err := json.Unmarshal(data, &f.Entries); err != nil {
		return nil, fmt.Errorf("parsing state %s: %w", statePath, err)
	}
	if f.Entries == nil {
		f.Entries = make(map[string]*Entry)
	}
	return f, nil
}

// SaveFakeOps persists the namespace of f as JSON.
func SaveFakeOps(statePath string, f *FakeOps) error {
	data, err := json.MarshalIndent(f.Entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.WriteFile(statePath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// formatStat expands %F, %u, %g and %r in format.
func formatStat(format string, e *Entry) string {
	kind := "regular file"
	if e.Dir {
		kind = "directory"
	}
	return strings.NewReplacer(
		"%F", kind,
		"%u", e.Owner,
		"%g", e.Group,
		"%r", strconv.Itoa(e.Replication),
	).Replace(format)
}

func usage(stderr io.Writer, op string) int {
	fmt.Fprintf(stderr, "-%s: Illegal number of arguments\n", op) //nolint:errcheck
	return 1
}
