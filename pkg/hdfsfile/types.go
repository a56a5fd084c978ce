package hdfsfile

import "fmt"

// State is the kind of object a path holds, or should hold.
type State string

const (
	// StateFile is a regular file. As a desired state it never creates the file.
	StateFile State = "file"
	// StateDirectory is a directory.
	StateDirectory State = "directory"
	// StateAbsent means nothing exists at the path.
	StateAbsent State = "absent"
	// StateTouch is a desired state only: create an empty file or refresh its
	// timestamps. It is never reported by Stat.
	StateTouch State = "touch"
)

// ParseState converts a parameter value to a State. The empty string maps to
// StateFile.
func ParseState(s string) (State, error) {
	switch State(s) {
	case "":
		return StateFile, nil
	case StateFile, StateDirectory, StateAbsent, StateTouch:
		return State(s), nil
	default:
		return "", fmt.Errorf("unknown state %q (expected file, directory, absent or touch)", s)
	}
}

// DesiredSpec is the declarative target for a single path. Zero values of the
// optional fields mean "leave unchanged".
type DesiredSpec struct {
	Path        string
	State       State
	Owner       string
	Group       string
	Mode        string // canonical octal, e.g. "0755"
	Replication int
	Recurse     bool
}

// Status is the observed state of a path. When State is StateAbsent the other
// fields are zero.
type Status struct {
	State       State  `json:"state"`
	Owner       string `json:"owner,omitempty"`
	Group       string `json:"group,omitempty"`
	Replication int    `json:"replication,omitempty"`
}

// AbsentStatus is the status of a missing path.
func AbsentStatus() Status {
	return Status{State: StateAbsent}
}

// Result is the outcome of a reconciliation.
type Result struct {
	Changed bool
	DryRun  bool
	// Actions lists the primitives that ran, or would have run in dry-run, in order.
	Actions []Action
}
