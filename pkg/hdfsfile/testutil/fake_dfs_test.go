package testutil_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/hdfsfile/pkg/hdfsfile/testutil"
)

func dfs(t *testing.T, state string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := testutil.RunFakeDFS(args, &stdout, &stderr, state)
	return code, stdout.String(), stderr.String()
}

func TestRunFakeDFS(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.json")
	format := "%F[SEP]%u[SEP]%g[SEP]%r"

	code, _, stderr := dfs(t, state, "dfs", "-stat", format, "/tmp/x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "No such file or directory")

	code, _, stderr = dfs(t, state, "dfs", "-mkdir", "-p", "/tmp/x")
	require.Equal(t, 0, code, stderr)

	code, _, stderr = dfs(t, state, "dfs", "-chown", "-R", "alice:staff", "/tmp/x")
	require.Equal(t, 0, code, stderr)

	code, stdout, _ := dfs(t, state, "dfs", "-stat", format, "/tmp/x")
	require.Equal(t, 0, code)
	assert.Equal(t, "directory[SEP]alice[SEP]staff[SEP]0", strings.TrimSpace(stdout))

	code, _, stderr = dfs(t, state, "dfs", "-touchz", "/tmp/x/f")
	require.Equal(t, 0, code, stderr)
	code, _, stderr = dfs(t, state, "dfs", "-setrep", "2", "/tmp/x/f")
	require.Equal(t, 0, code, stderr)

	code, stdout, _ = dfs(t, state, "dfs", "-stat", format, "/tmp/x/f")
	require.Equal(t, 0, code)
	assert.Equal(t, "regular file[SEP]hdfs[SEP]supergroup[SEP]2", strings.TrimSpace(stdout))

	f, err := testutil.LoadFakeOps(state)
	require.NoError(t, err)
	assert.Equal(t, 2, f.Get("/tmp/x/f").Replication)

	code, _, stderr = dfs(t, state, "dfs", "-rm", "/tmp/x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Is a directory")

	code, _, stderr = dfs(t, state, "dfs", "-rm", "-r", "/tmp/x")
	require.Equal(t, 0, code, stderr)
	f, err = testutil.LoadFakeOps(state)
	require.NoError(t, err)
	assert.Nil(t, f.Get("/tmp/x/f"))
}

func TestRunFakeDFS_Usage(t *testing.T) {
	state := filepath.Join(t.TempDir(), "state.json")

	code, _, _ := dfs(t, state, "fs")
	assert.Equal(t, 2, code)

	code, _, stderr := dfs(t, state, "dfs", "-du", "/x")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown command")

	code, _, _ = dfs(t, "", "dfs", "-mkdir", "/x")
	assert.Equal(t, 2, code)
}
