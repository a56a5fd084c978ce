package hdfsfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile"
)

func TestParseParams(t *testing.T) {
	p, err := hdfsfile.ParseParams([]byte(`
name: /tmp/myfolder
state: directory
owner: myuser
group: mygroup
mode: 0755
replication: 2
recurse: true
check_mode: true
`))
	require.NoError(t, err)

	assert.Equal(t, hdfsfile.ModeValue("0755"), p.Mode, "unquoted octal keeps its literal form")
	assert.True(t, p.Check)

	spec, err := p.Spec()
	require.NoError(t, err)
	assert.Equal(t, hdfsfile.DesiredSpec{
		Path:        "/tmp/myfolder",
		State:       hdfsfile.StateDirectory,
		Owner:       "myuser",
		Group:       "mygroup",
		Mode:        "0755",
		Replication: 2,
		Recurse:     true,
	}, spec)
}

func TestParseParams_Empty(t *testing.T) {
	p, err := hdfsfile.ParseParams(nil)
	require.NoError(t, err)
	assert.Equal(t, hdfsfile.Params{}, p)
}

func TestParseParams_UnknownKey(t *testing.T) {
	_, err := hdfsfile.ParseParams([]byte("path: /a\nsize: 10\n"))
	assert.Error(t, err)
}

func TestReadParamsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "params.yml")
	require.NoError(t, os.WriteFile(file, []byte("dest: /data\nstate: absent\n"), 0o644))

	p, err := hdfsfile.ReadParamsFile(file)
	require.NoError(t, err)
	spec, err := p.Spec()
	require.NoError(t, err)
	assert.Equal(t, "/data", spec.Path)
	assert.Equal(t, hdfsfile.StateAbsent, spec.State)

	_, err = hdfsfile.ReadParamsFile(filepath.Join(dir, "missing.yml"))
	assert.Error(t, err)
}

func TestParams_Spec_Defaults(t *testing.T) {
	spec, err := hdfsfile.Params{Path: "/a"}.Spec()
	require.NoError(t, err)
	assert.Equal(t, hdfsfile.StateFile, spec.State)
	assert.Empty(t, spec.Mode)
	assert.Zero(t, spec.Replication)
}

func TestParams_Spec_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		params hdfsfile.Params
		field  string
	}{
		{"missing path", hdfsfile.Params{State: "file"}, "path"},
		{"relative path", hdfsfile.Params{Path: "tmp/x"}, "path"},
		{"conflicting aliases", hdfsfile.Params{Path: "/a", Dest: "/b"}, "dest"},
		{"bad state", hdfsfile.Params{Path: "/a", State: "link"}, "state"},
		{"bad mode", hdfsfile.Params{Path: "/a", Mode: "u+rwx"}, "mode"},
		{"decimal mode", hdfsfile.Params{Path: "/a", Mode: "493"}, "mode"},
		{"negative replication", hdfsfile.Params{Path: "/a", Replication: -1}, "replication"},
		{"colon in owner", hdfsfile.Params{Path: "/a", Owner: "a:b"}, "owner"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.params.Spec()
			var perr *hdfsfile.ParamError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.field, perr.Field)
		})
	}
}

func TestParams_ResolvedPath_SameAliases(t *testing.T) {
	path, err := hdfsfile.Params{Path: "/a", Name: "/a"}.ResolvedPath()
	require.NoError(t, err)
	assert.Equal(t, "/a", path)
}

func TestDesiredSpec_Validate_URIPath(t *testing.T) {
	assert.NoError(t, hdfsfile.DesiredSpec{Path: "hdfs://nn:8020/data"}.Validate())
	assert.Error(t, hdfsfile.DesiredSpec{Path: "hdfs://"}.Validate())
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"0755", "0755", false},
		{"755", "0755", false},
		{"1777", "1777", false},
		{"0o644", "0644", false},
		{" 0600 ", "0600", false},
		{"0855", "", true},
		{"75", "", true},
		{"07555", "", true},
		{"a+x", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := hdfsfile.ParseMode(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseState(t *testing.T) {
	for _, s := range []string{"file", "directory", "absent", "touch"} {
		st, err := hdfsfile.ParseState(s)
		require.NoError(t, err)
		assert.Equal(t, hdfsfile.State(s), st)
	}

	st, err := hdfsfile.ParseState("")
	require.NoError(t, err)
	assert.Equal(t, hdfsfile.StateFile, st)

	_, err = hdfsfile.ParseState("link")
	assert.Error(t, err)

}
