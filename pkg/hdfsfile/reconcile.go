package hdfsfile

import "context"

// Reconcile converges the path described by spec using ops. It queries the
// current status once, plans the required actions and applies them in
// order. Any error aborts the run; no partial result is returned.
//
// Reconcile is stateless and does not log. Pass a *DryRunOps to compute the
// result without mutating the backend.
func Reconcile(ctx context.Context, spec DesiredSpec, ops FilesystemOps) (Result, error) {
	if ops == nil {
		return Result{}, &ConfigurationError{Reason: "no filesystem ops provided"}
	}
	if err := spec.Validate(); err != nil {
		return Result{}, err
	}

	status, err := ops.Stat(ctx, spec.Path)
	if err != nil {
		return Result{}, err
	}

	plan, err := NewPlan(spec, status)
	if err != nil {
		return Result{}, err
	}
	return plan.Apply(ctx, ops)
}

// PlanFor queries the status of spec.Path and returns the plan without
// applying it.
func PlanFor(ctx context.Context, spec DesiredSpec, ops FilesystemOps) (*Plan, error) {
	if ops == nil {
		return nil, &ConfigurationError{Reason: "no filesystem ops provided"}
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	status, err := ops.Stat(ctx, spec.Path)
	if err != nil {
		return nil, err
	}
	return NewPlan(spec, status)
}
