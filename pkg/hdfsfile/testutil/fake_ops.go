// Package testutil provides in-memory doubles of the filesystem backend.
package testutil

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

// Entry is a file or directory in the fake namespace.
type Entry struct {
	Dir         bool   `json:"dir,omitempty"`
	Owner       string `json:"owner"`
	Group       string `json:"group"`
	Mode        string `json:"mode"`
	Replication int    `json:"replication,omitempty"`
	Touched     int    `json:"touched,omitempty"`
}

// Call records a single method invocation on FakeOps.
type Call struct {
	Method string   // "Stat", "Mkdir", "Remove", "Touch", "Chown", "Chmod" or "SetRep"
	Path   string   // path argument
	Args   []string // remaining arguments, formatted
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Method + " " + c.Path
	}
	return c.Method + " " + c.Path + " " + strings.Join(c.Args, " ")
}

// FakeOps is an in-memory hdfsfile.FilesystemOps. It records all calls (spy)
// and simulates the namespace (fake). Pre-populate Entries and Errors before
// use; Errors is keyed by method name and checked first.
type FakeOps struct {
	Entries map[string]*Entry
	Errors  map[string]error
	Calls   []Call

	// Defaults applied to created objects.
	User        string
	Supergroup  string
	Replication int
}

var _ hdfsfile.FilesystemOps = (*FakeOps)(nil)

// NewFakeOps returns an empty namespace owned by hdfs:supergroup with a
// default replication of 3.
func NewFakeOps() *FakeOps {
	return &FakeOps{
		Entries:     make(map[string]*Entry),
		Errors:      make(map[string]error),
		User:        "hdfs",
		Supergroup:  "supergroup",
		Replication: 3,
	}
}

// AddDir adds a directory and any missing parents.
func (f *FakeOps) AddDir(p, owner, group string) *FakeOps {
	f.mkdirAll(p)
	e := f.Entries[clean(p)]
	e.Owner, e.Group = owner, group
	return f
}

// AddFile adds a file, creating missing parent directories.
func (f *FakeOps) AddFile(p, owner, group string, replication int) *FakeOps {
	p = clean(p)
	f.mkdirAll(path.Dir(p))
	f.Entries[p] = &Entry{Owner: owner, Group: group, Mode: "0644", Replication: replication}
	return f
}

// Get returns the entry at p, or nil.
func (f *FakeOps) Get(p string) *Entry {
	return f.Entries[clean(p)]
}

// Snapshot returns a deep copy of the namespace.
func (f *FakeOps) Snapshot() map[string]Entry {
	out := make(map[string]Entry, len(f.Entries))
	for k, v := range f.Entries {
		out[k] = *v
	}
	return out
}

// Mutations returns the recorded calls other than Stat.
func (f *FakeOps) Mutations() []Call {
	var out []Call
	for _, c := range f.Calls {
		if c.Method != "Stat" {
			out = append(out, c)
		}
	}
	return out
}

// Reset clears the call log.
func (f *FakeOps) Reset() {
	f.Calls = nil
}

// Stat implements hdfsfile.FilesystemOps.
func (f *FakeOps) Stat(_ context.Context, p string) (hdfsfile.Status, error) {
	if err := f.record("Stat", p); err != nil {
		return hdfsfile.Status{}, err
	}
	e, ok := f.Entries[clean(p)]
	if !ok {
		return hdfsfile.AbsentStatus(), nil
	}
	if e.Dir {
		return hdfsfile.Status{State: hdfsfile.StateDirectory, Owner: e.Owner, Group: e.Group}, nil
	}
	return hdfsfile.Status{
		State:       hdfsfile.StateFile,
		Owner:       e.Owner,
		Group:       e.Group,
		Replication: e.Replication,
	}, nil
}

// Mkdir implements hdfsfile.FilesystemOps.
func (f *FakeOps) Mkdir(_ context.Context, p string, parent bool) error {
	if err := f.record("Mkdir", p, fmt.Sprintf("parent=%t", parent)); err != nil {
		return err
	}
	p = clean(p)
	if e, ok := f.Entries[p]; ok {
		if e.Dir && parent {
			return nil
		}
		return f.fail("mkdir", p, "File exists")
	}
	if !parent && !f.isDir(path.Dir(p)) {
		return f.fail("mkdir", path.Dir(p), "No such file or directory")
	}
	if err := f.checkParents(path.Dir(p)); err != nil {
		return err
	}
	f.mkdirAll(p)
	return nil
}

// Remove implements hdfsfile.FilesystemOps.
func (f *FakeOps) Remove(_ context.Context, p string, recurse bool) error {
	if err := f.record("Remove", p, fmt.Sprintf("recurse=%t", recurse)); err != nil {
		return err
	}
	p = clean(p)
	e, ok := f.Entries[p]
	if !ok {
		return f.fail("rm", p, "No such file or directory")
	}
	if e.Dir && !recurse {
		return f.fail("rm", p, "Is a directory")
	}
	for _, child := range f.below(p) {
		delete(f.Entries, child)
	}
	delete(f.Entries, p)
	return nil
}

// Touch implements hdfsfile.FilesystemOps.
func (f *FakeOps) Touch(_ context.Context, p string) error {
	if err := f.record("Touch", p); err != nil {
		return err
	}
	p = clean(p)
	if e, ok := f.Entries[p]; ok {
		if e.Dir {
			return f.fail("touchz", p, "Is a directory")
		}
		e.Touched++
		return nil
	}
	if !f.isDir(path.Dir(p)) {
		return f.fail("touchz", path.Dir(p), "No such file or directory")
	}
	f.Entries[p] = &Entry{Owner: f.User, Group: f.Supergroup, Mode: "0644", Replication: f.Replication}
	return nil
}

// Chown implements hdfsfile.FilesystemOps.
func (f *FakeOps) Chown(_ context.Context, p, owner, group string, recurse bool) error {
	if err := f.record("Chown", p, hdfsfile.ChownTarget(owner, group), fmt.Sprintf("recurse=%t", recurse)); err != nil {
		return err
	}
	return f.each("chown", p, recurse, func(e *Entry) {
		if owner != "" {
			e.Owner = owner
		}
		if group != "" {
			e.Group = group
		}
	})
}

// Chmod implements hdfsfile.FilesystemOps.
func (f *FakeOps) Chmod(_ context.Context, p, mode string, recurse bool) error {
	if err := f.record("Chmod", p, mode, fmt.Sprintf("recurse=%t", recurse)); err != nil {
		return err
	}
	return f.each("chmod", p, recurse, func(e *Entry) { e.Mode = mode })
}

// SetRep implements hdfsfile.FilesystemOps. Like the real client it always
// descends into directories and only files carry a replication factor.
func (f *FakeOps) SetRep(_ context.Context, p string, factor int) error {
	if err := f.record("SetRep", p, fmt.Sprint(factor)); err != nil {
		return err
	}
	return f.each("setrep", p, true, func(e *Entry) {
		if !e.Dir {
			e.Replication = factor
		}
	})
}

func (f *FakeOps) record(method, p string, args ...string) error {
	f.Calls = append(f.Calls, Call{Method: method, Path: p, Args: args})
	if err, ok := f.Errors[method]; ok {
		return err
	}
	return nil
}

func (f *FakeOps) fail(op, p, reason string) error {
	msg := fmt.Sprintf("%s: `%s': %s", op, p, reason)
	return &hdfsfile.TransportError{Op: op, Path: p, Stderr: msg, Err: fmt.Errorf("exit status 1")}
}

func (f *FakeOps) each(op, p string, recurse bool, apply func(*Entry)) error {
	p = clean(p)
	e, ok := f.Entries[p]
	if !ok {
		return f.fail(op, p, "No such file or directory")
	}
	apply(e)
	if recurse && e.Dir {
		for _, child := range f.below(p) {
			apply(f.Entries[child])
		}
	}
	return nil
}

func (f *FakeOps) isDir(p string) bool {
	if p == "/" {
		return true
	}
	e, ok := f.Entries[p]
	return ok && e.Dir
}

func (f *FakeOps) checkParents(p string) error {
	for ; p != "/" && p != "."; p = path.Dir(p) {
		if e, ok := f.Entries[p]; ok && !e.Dir {
			return f.fail("mkdir", p, "Is not a directory")
		}
	}
	return nil
}

func (f *FakeOps) mkdirAll(p string) {
	for p = clean(p); p != "/" && p != "."; p = path.Dir(p) {
		if _, ok := f.Entries[p]; ok {
			continue
		}
		f.Entries[p] = &Entry{Dir: true, Owner: f.User, Group: f.Supergroup, Mode: "0755"}
	}
}

// below returns the paths strictly under p, sorted.
func (f *FakeOps) below(p string) []string {
	prefix := strings.TrimSuffix(p, "/") + "/"
	var out []string
	for k := range f.Entries {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func clean(p string) string {
	return path.Clean("/" + p)
}
