package hdfsfile

import "context"

// DryRunOps wraps a FilesystemOps for check mode. Stat reaches the wrapped
// ops so decisions stay accurate; every mutation succeeds without touching
// the backend.
type DryRunOps struct {
	ops FilesystemOps
}

// NewDryRunOps wraps ops. Wrapping an existing *DryRunOps returns it as is.
func NewDryRunOps(ops FilesystemOps) (*DryRunOps, error) {
	switch o := ops.(type) {
	case nil:
		return nil, &ConfigurationError{Reason: "dry-run expects a valid filesystem ops instance"}
	case *DryRunOps:
		if o == nil {
			return nil, &ConfigurationError{Reason: "dry-run expects a valid filesystem ops instance"}
		}
		return o, nil
	}
	return &DryRunOps{ops: ops}, nil
}

// Unwrap returns the wrapped ops.
func (d *DryRunOps) Unwrap() FilesystemOps {
	return d.ops
}

// Stat delegates to the wrapped ops.
func (d *DryRunOps) Stat(ctx context.Context, path string) (Status, error) {
	return d.ops.Stat(ctx, path)
}

func (d *DryRunOps) Mkdir(context.Context, string, bool) error                 { return nil }
func (d *DryRunOps) Remove(context.Context, string, bool) error                { return nil }
func (d *DryRunOps) Touch(context.Context, string) error                       { return nil }
func (d *DryRunOps) Chown(context.Context, string, string, string, bool) error { return nil }
func (d *DryRunOps) Chmod(context.Context, string, string, bool) error         { return nil }
func (d *DryRunOps) SetRep(context.Context, string, int) error                 { return nil }

// IsDryRun reports whether ops is a dry-run wrapper.
func IsDryRun(ops FilesystemOps) bool {
	_, ok := ops.(*DryRunOps)
	return ok
}
