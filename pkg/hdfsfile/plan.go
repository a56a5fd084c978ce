package hdfsfile

import (
	"context"
	"fmt"
	"strings"

	"github.com/gammazero/toposort"
)

// ActionType names a filesystem primitive.
type ActionType string

const (
	ActionMkdir  ActionType = "mkdir"
	ActionRemove ActionType = "remove"
	ActionTouch  ActionType = "touch"
	ActionChown  ActionType = "chown"
	ActionSetRep ActionType = "setrep"
	ActionChmod  ActionType = "chmod"
)

// runsAfter lists, per action type, the types that must complete first
// when both are planned. Types that are not planned drop out of the graph.
var runsAfter = map[ActionType][]ActionType{
	ActionChown:  {ActionMkdir, ActionRemove, ActionTouch},
	ActionSetRep: {ActionMkdir, ActionRemove, ActionTouch, ActionChown},
	ActionChmod:  {ActionMkdir, ActionRemove, ActionTouch, ActionChown, ActionSetRep},
}

// actionTypes is the fallback order for actions without edges.
var actionTypes = []ActionType{ActionMkdir, ActionRemove, ActionTouch, ActionChown, ActionSetRep, ActionChmod}

// Action is a single primitive call selected by the planner.
type Action struct {
	Type        ActionType `json:"type"`
	Path        string     `json:"path"`
	Owner       string     `json:"owner,omitempty"`
	Group       string     `json:"group,omitempty"`
	Mode        string     `json:"mode,omitempty"`
	Replication int        `json:"replication,omitempty"`
	Parent      bool       `json:"parent,omitempty"`
	Recurse     bool       `json:"recurse,omitempty"`
}

// Apply invokes the primitive on ops.
func (a Action) Apply(ctx context.Context, ops FilesystemOps) error {
	switch a.Type {
	case ActionMkdir:
		return ops.Mkdir(ctx, a.Path, a.Parent)
	case ActionRemove:
		return ops.Remove(ctx, a.Path, a.Recurse)
	case ActionTouch:
		return ops.Touch(ctx, a.Path)
	case ActionChown:
		return ops.Chown(ctx, a.Path, a.Owner, a.Group, a.Recurse)
	case ActionSetRep:
		return ops.SetRep(ctx, a.Path, a.Replication)
	case ActionChmod:
		return ops.Chmod(ctx, a.Path, a.Mode, a.Recurse)
	default:
		return fmt.Errorf("unknown action type %q", a.Type)
	}
}

// String renders the action the way it reads on a dfs command line.
func (a Action) String() string {
	parts := []string{string(a.Type)}
	switch a.Type {
	case ActionMkdir:
		if a.Parent {
			parts = append(parts, "-p")
		}
	case ActionRemove:
		if a.Recurse {
			parts = append(parts, "-r")
		}
	case ActionChown:
		if a.Recurse {
			parts = append(parts, "-R")
		}
		parts = append(parts, ChownTarget(a.Owner, a.Group))
	case ActionSetRep:
		parts = append(parts, fmt.Sprint(a.Replication))
	case ActionChmod:
		if a.Recurse {
			parts = append(parts, "-R")
		}
		parts = append(parts, a.Mode)
	}
	return strings.Join(append(parts, a.Path), " ")
}

// ChownTarget formats owner and group as a chown argument: "owner",
// "owner:group" or ":group".
func ChownTarget(owner, group string) string {
	if group == "" {
		return owner
	}
	return owner + ":" + group
}

// Plan is the ordered set of actions that converges Status to Spec.
type Plan struct {
	Spec    DesiredSpec
	Status  Status
	Actions []Action

	planned map[ActionType]Action
}

// NewPlan compares the desired spec with the observed status and selects
// the actions to run. It performs no I/O. An impossible state change yields
// an *UnsupportedTransitionError.
func NewPlan(spec DesiredSpec, status Status) (*Plan, error) {
	if spec.State == "" {
		spec.State = StateFile
	}
	p := &Plan{Spec: spec, Status: status, planned: make(map[ActionType]Action)}

	if status.State != spec.State {
		action, err := transition(spec, status.State)
		if err != nil {
			return nil, err
		}
		p.add(action)
	}
	if spec.State != StateAbsent {
		p.planAttributes()
	}

	if err := p.resolve(); err != nil {
		return nil, err
	}
	return p, nil
}

// planAttributes selects chown, setrep and chmod. Comparisons use the status
// observed before any transition.
func (p *Plan) planAttributes() {
	spec, status := p.Spec, p.Status

	applyOwner := p.shouldModify(spec.Owner != "", spec.Owner, status.Owner)
	applyGroup := p.shouldModify(spec.Group != "", spec.Group, status.Group)
	if applyOwner || applyGroup {
		p.add(Action{
			Type:    ActionChown,
			Path:    spec.Path,
			Owner:   spec.Owner,
			Group:   spec.Group,
			Recurse: spec.Recurse,
		})
	}
	if p.shouldModify(spec.Replication > 0, fmt.Sprint(spec.Replication), fmt.Sprint(status.Replication)) {
		p.add(Action{
			Type:        ActionSetRep,
			Path:        spec.Path,
			Replication: spec.Replication,
		})
	}
	// The backend cannot report the current mode, so a requested mode is
	// always applied.
	if spec.Mode != "" {
		p.add(Action{
			Type:    ActionChmod,
			Path:    spec.Path,
			Mode:    spec.Mode,
			Recurse: spec.Recurse,
		})
	}
}

// Changed reports whether applying the plan changes anything.
func (p *Plan) Changed() bool {
	return len(p.Actions) > 0
}

// Apply runs the actions in order and stops at the first error.
func (p *Plan) Apply(ctx context.Context, ops FilesystemOps) (Result, error) {
	for _, a := range p.Actions {
		if err := a.Apply(ctx, ops); err != nil {
			return Result{}, err
		}
	}
	return Result{
		Changed: p.Changed(),
		DryRun:  IsDryRun(ops),
		Actions: p.Actions,
	}, nil
}

// shouldModify decides whether a requested attribute must be applied. Touch
// always re-applies: the status predates the touch and cannot be compared.
func (p *Plan) shouldModify(requested bool, want, have string) bool {
	if !requested {
		return false
	}
	if p.Spec.State == StateTouch {
		return true
	}
	return want != have
}

func (p *Plan) add(a Action) {
	p.planned[a.Type] = a
}

// resolve decides the apply order of the planned actions.
func (p *Plan) resolve() error {
	edges := make([]toposort.Edge, 0, len(p.planned))
	for t := range p.planned {
		for _, dep := range runsAfter[t] {
			if _, ok := p.planned[dep]; ok {
				// dependency -> action
				edges = append(edges, toposort.Edge{string(dep), string(t)})
			}
		}
	}

	sorted, err := toposort.Toposort(edges)
	if err != nil {
		return fmt.Errorf("circular action dependency: %w", err)
	}

	p.Actions = make([]Action, 0, len(p.planned))
	seen := make(map[ActionType]bool, len(p.planned))
	for _, v := range sorted {
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("unexpected type in topological sort result: %T", v)
		}
		t := ActionType(s)
		if a, exists := p.planned[t]; exists && !seen[t] {
			p.Actions = append(p.Actions, a)
			seen[t] = true
		}
	}
	for _, t := range actionTypes {
		if a, exists := p.planned[t]; exists && !seen[t] {
			p.Actions = append(p.Actions, a)
		}
	}
	if len(p.Actions) == 0 {
		p.Actions = nil
	}
	return nil
}

// transition selects the primitive that turns the current state into the
// desired one.
func transition(spec DesiredSpec, from State) (Action, error) {
	to := spec.State
	switch {
	case from == StateAbsent && to == StateDirectory:
		return Action{Type: ActionMkdir, Path: spec.Path, Parent: true}, nil
	case to == StateTouch && (from == StateAbsent || from == StateFile):
		return Action{Type: ActionTouch, Path: spec.Path}, nil
	case to == StateAbsent && from == StateFile:
		return Action{Type: ActionRemove, Path: spec.Path}, nil
	case to == StateAbsent && from == StateDirectory:
		return Action{Type: ActionRemove, Path: spec.Path, Recurse: true}, nil
	default:
		return Action{}, &UnsupportedTransitionError{From: from, To: to}
	}
}
