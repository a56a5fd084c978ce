package hdfsfile_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func TestTransportError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := &hdfsfile.TransportError{
		Op:     "mkdir",
		Path:   "/a/b",
		Stderr: "mkdir: `/a': No such file or directory\n",
		Err:    cause,
	}

	assert.Equal(t, "mkdir /a/b failed: exit status 1: stderr: mkdir: `/a': No such file or directory", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("reconcile: %w", err)
	var terr *hdfsfile.TransportError
	assert.ErrorAs(t, wrapped, &terr)
	assert.Equal(t, "mkdir", terr.Op)
}

func TestUnsupportedTransitionError(t *testing.T) {
	err := &hdfsfile.UnsupportedTransitionError{From: hdfsfile.StateDirectory, To: hdfsfile.StateFile}
	assert.Equal(t, "unsupported state convert 'directory' -> 'file'", err.Error())

	err = &hdfsfile.UnsupportedTransitionError{From: hdfsfile.StateAbsent, To: hdfsfile.StateFile}
	assert.Contains(t, err.Error(), "use state 'touch'")
}

func TestConfigurationError(t *testing.T) {
	cause := errors.New("bad level")
	err := &hdfsfile.ConfigurationError{Reason: "invalid log_level", Cause: cause}
	assert.Equal(t, "configuration error: invalid log_level: bad level", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "configuration error: x", (&hdfsfile.ConfigurationError{Reason: "x"}).Error())
}

func TestParamError(t *testing.T) {
	err := &hdfsfile.ParamError{Field: "path", Reason: "required"}
	assert.Equal(t, "invalid parameter path: required", err.Error())
}
