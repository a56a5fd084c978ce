package hdfsfile

import "fmt"

// Method selects the backend transport.
type Method string

const (
	// MethodCommand drives the hdfs command-line client.
	MethodCommand Method = "command"
	// MethodLibrary is reserved for a native client library. Not implemented.
	MethodLibrary Method = "library"
)

// ParseMethod converts a parameter value to a Method. The empty string maps
// to MethodCommand.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", MethodCommand:
		return MethodCommand, nil
	case MethodLibrary:
		return MethodLibrary, nil
	default:
		return "", &ParamError{Field: "method", Reason: fmt.Sprintf("unknown method %q (expected command or library)", s)}
	}
}

// OpsFactory builds the FilesystemOps for the command method.
type OpsFactory func() (FilesystemOps, error)

// OpenOps returns the ops for method, wrapped in DryRunOps when check is
// set. Unimplemented methods fail before any backend call.
func OpenOps(method Method, check bool, command OpsFactory) (FilesystemOps, error) {
	var ops FilesystemOps
	switch method {
	case MethodCommand, "":
		if command == nil {
			return nil, &ConfigurationError{Reason: "no command backend configured"}
		}
		var err error
		ops, err = command()
		if err != nil {
			return nil, err
		}
	default:
		return nil, &UnsupportedMethodError{Method: method}
	}
	if check {
		return NewDryRunOps(ops)
	}
	return ops, nil
}
