package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

// result is the machine-readable outcome written to stdout.
type result struct {
	Changed bool              `json:"changed"`
	Failed  bool              `json:"failed,omitempty"`
	Msg     string            `json:"msg,omitempty"`
	Check   bool              `json:"check_mode,omitempty"`
	Path    string            `json:"path,omitempty"`
	State   string            `json:"state,omitempty"`
	Actions []hdfsfile.Action `json:"actions,omitempty"`
}

// printer writes results as JSON or colored text.
type printer struct {
	w      io.Writer
	format string

	colorChanged *color.Color
	colorOK      *color.Color
	colorFailed  *color.Color
	colorAction  *color.Color
}

func newPrinter(w io.Writer, format string) *printer {
	return &printer{
		w:            w,
		format:       format,
		colorChanged: color.New(color.FgYellow),
		colorOK:      color.New(color.FgGreen),
		colorFailed:  color.New(color.FgRed, color.Bold),
		colorAction:  color.New(color.FgCyan),
	}
}

// fail reports err and returns errExit so the command exits non-zero.
func (p *printer) fail(err error) error {
	if p.format == "text" {
		p.colorFailed.Fprintf(p.w, "failed: %v\n", err) //nolint:errcheck
		return errExit
	}
	if encErr := p.json(result{Failed: true, Msg: err.Error()}); encErr != nil {
		return encErr
	}
	return errExit
}

func (p *printer) result(spec hdfsfile.DesiredSpec, res hdfsfile.Result) error {
	if p.format == "text" {
		p.text(spec.Path, res.Changed, res.DryRun, res.Actions)
		return nil
	}
	return p.json(result{
		Changed: res.Changed,
		Check:   res.DryRun,
		Path:    spec.Path,
		State:   string(spec.State),
		Actions: res.Actions,
	})
}

func (p *printer) plan(plan *hdfsfile.Plan) error {
	if p.format == "text" {
		p.text(plan.Spec.Path, plan.Changed(), true, plan.Actions)
		return nil
	}
	return p.json(result{
		Changed: plan.Changed(),
		Check:   true,
		Path:    plan.Spec.Path,
		State:   string(plan.Spec.State),
		Actions: plan.Actions,
	})
}

func (p *printer) status(path string, st hdfsfile.Status) error {
	if p.format == "text" {
		if st.State == hdfsfile.StateAbsent {
			fmt.Fprintf(p.w, "%s: absent\n", path) //nolint:errcheck
			return nil
		}
		fmt.Fprintf(p.w, "%s: %s owner=%s group=%s replication=%d\n", //nolint:errcheck
			path, st.State, st.Owner, st.Group, st.Replication)
		return nil
	}
	return p.json(struct {
		Path string `json:"path"`
		hdfsfile.Status
	}{path, st})
}

func (p *printer) text(path string, changed, check bool, actions []hdfsfile.Action) {
	prefix := ""
	if check {
		prefix = "(check) "
	}
	if !changed {
		p.colorOK.Fprintf(p.w, "%sok: %s\n", prefix, path) //nolint:errcheck
		return
	}
	p.colorChanged.Fprintf(p.w, "%schanged: %s\n", prefix, path) //nolint:errcheck
	for _, a := range actions {
		p.colorAction.Fprintf(p.w, "  - %s\n", a) //nolint:errcheck
	}
}

func (p *printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
