package hdfsfile

import "context"

// FilesystemOps performs primitive operations against a path in a
// Hadoop-compatible filesystem.
//
// Stat must not fail for a missing path: absence is reported as a Status
// with StateAbsent. Every mutating method is a single backend invocation and
// returns a *TransportError when the backend rejects it.
type FilesystemOps interface {
	Stat(ctx context.Context, path string) (Status, error)
	Mkdir(ctx context.Context, path string, parent bool) error
	Remove(ctx context.Context, path string, recurse bool) error
	// Touch creates an empty file or refreshes the timestamps of an existing
	// one. It never creates directories.
	Touch(ctx context.Context, path string) error
	// Chown changes owner and/or group; at least one of them is non-empty.
	Chown(ctx context.Context, path, owner, group string, recurse bool) error
	Chmod(ctx context.Context, path, mode string, recurse bool) error
	// SetRep sets the replication factor. Backends may apply it recursively
	// to directories.
	SetRep(ctx context.Context, path string, factor int) error
}
