package hdfsfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Params is the host-facing parameter record. It mirrors the module
// arguments accepted from a parameter file or command-line flags.
type Params struct {
	Path        string    `yaml:"path"`
	Dest        string    `yaml:"dest"`
	Name        string    `yaml:"name"`
	State       string    `yaml:"state"`
	Owner       string    `yaml:"owner"`
	Group       string    `yaml:"group"`
	Mode        ModeValue `yaml:"mode"`
	Replication int       `yaml:"replication"`
	Recurse     bool      `yaml:"recurse"`
	Method      string    `yaml:"method"`
	Check       bool      `yaml:"check_mode"`
}

// ParseParams decodes a YAML parameter document. Unknown keys are rejected.
func ParseParams(data []byte) (Params, error) {
	var p Params
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return p, nil
		}
		return Params{}, fmt.Errorf("parsing params: %w", err)
	}
	return p, nil
}

// ReadParamsFile reads and decodes a YAML parameter file.
func ReadParamsFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, fmt.Errorf("reading params file %s: %w", path, err)
	}
	return ParseParams(data)
}

// ResolvedPath returns the target path, accepting the dest and name aliases.
func (p Params) ResolvedPath() (string, error) {
	path := ""
	for _, candidate := range []struct{ field, value string }{
		{"path", p.Path},
		{"dest", p.Dest},
		{"name", p.Name},
	} {
		if candidate.value == "" {
			continue
		}
		if path != "" && path != candidate.value {
			return "", &ParamError{Field: candidate.field, Reason: fmt.Sprintf("conflicts with path %q", path)}
		}
		path = candidate.value
	}
	if path == "" {
		return "", &ParamError{Field: "path", Reason: "required"}
	}
	return path, nil
}

// MethodOrDefault returns the requested method, defaulting to MethodCommand.
func (p Params) MethodOrDefault() (Method, error) {
	return ParseMethod(p.Method)
}

// Spec converts the parameters into a validated DesiredSpec.
func (p Params) Spec() (DesiredSpec, error) {
	path, err := p.ResolvedPath()
	if err != nil {
		return DesiredSpec{}, err
	}
	state, err := ParseState(p.State)
	if err != nil {
		return DesiredSpec{}, &ParamError{Field: "state", Reason: err.Error()}
	}
	mode := ""
	if p.Mode != "" {
		mode, err = ParseMode(string(p.Mode))
		if err != nil {
			return DesiredSpec{}, &ParamError{Field: "mode", Reason: err.Error()}
		}
	}
	spec := DesiredSpec{
		Path:        path,
		State:       state,
		Owner:       p.Owner,
		Group:       p.Group,
		Mode:        mode,
		Replication: p.Replication,
		Recurse:     p.Recurse,
	}
	if err := spec.Validate(); err != nil {
		return DesiredSpec{}, err
	}
	return spec, nil
}

// Validate checks the spec before any backend call is made.
func (s DesiredSpec) Validate() error {
	if s.Path == "" {
		return &ParamError{Field: "path", Reason: "required"}
	}
	if !isAbsolute(s.Path) {
		return &ParamError{Field: "path", Reason: fmt.Sprintf("%q is not an absolute path", s.Path)}
	}
	if s.State != "" {
		if _, err := ParseState(string(s.State)); err != nil {
			return &ParamError{Field: "state", Reason: err.Error()}
		}
	}
	if s.Mode != "" {
		if _, err := ParseMode(s.Mode); err != nil {
			return &ParamError{Field: "mode", Reason: err.Error()}
		}
	}
	if s.Replication < 0 {
		return &ParamError{Field: "replication", Reason: fmt.Sprintf("must be a positive integer, got %d", s.Replication)}
	}
	if strings.Contains(s.Owner, ":") || strings.Contains(s.Group, ":") {
		return &ParamError{Field: "owner", Reason: "owner and group must not contain ':'"}
	}
	return nil
}

// isAbsolute accepts rooted paths and fully qualified URIs such as
// hdfs://namenode:8020/data.
func isAbsolute(p string) bool {
	if strings.HasPrefix(p, "/") {
		return true
	}
	scheme, rest, ok := strings.Cut(p, "://")
	return ok && scheme != "" && !strings.ContainsAny(scheme, "/") && strings.Contains(rest, "/")
}
