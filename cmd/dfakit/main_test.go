package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const endsInA = "q0,q1\nq0\nq1\nq0,a,q1\nq1,a,q1\nq0,b,q0\nq1,b,q0\n"

// setup isolates a test in a temp dir with a file store and quiet logs.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DFAKIT_STORE_BACKEND", "file")
	t.Setenv("DFAKIT_STORE_DIR", filepath.Join(dir, "store"))
	t.Setenv("DFAKIT_LOG", "error")
	return dir
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		// cobra falls back to os.Args on nil.
		args = []string{}
	}
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags undoes values left by a previous Execute in the same process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestVersion(t *testing.T) {
	setup(t)
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dfakit version "))
}

func TestBuild(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "", "build", "--states", "q0,q1", "--initial", "q0", "--finals", "q1",
		"-t", "q0,a,q1", "-t", "q1,a,q1")
	require.NoError(t, err)
	assert.Equal(t, "q0,q1\nq0\nq1\nq1,a,q1\nq0,a,q1\n", out)

	path := filepath.Join(dir, "a.dfa")
	_, err = execute(t, "", "build", "--states", "q0,q1", "--initial", "q0", "--finals", "q1",
		"-t", "q0,a,q1", "-o", path)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "q0,q1\nq0\nq1\nq0,a,q1\n", string(data))

	_, err = execute(t, "", "build", "--states", "q0", "--initial", "q0", "-t", "q0,a")
	assert.ErrorIs(t, err, domain.ErrMalformedTransition)
}

func TestRun(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "ends-in-a.dfa", endsInA)

	out, err := execute(t, "", "run", path, "ba", "ab", "ac")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "\"ba\"\tAccepted", lines[0])
	assert.Equal(t, "\"ab\"\tRejected", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "\"ac\"\tRejected\t"), lines[2])

	t.Run("Inputs From Stdin", func(t *testing.T) {
		out, err := execute(t, "a\nb\n", "run", path)
		require.NoError(t, err)
		assert.Equal(t, "\"a\"\tAccepted\n\"b\"\tRejected\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := execute(t, "", "run", "--json", path, "a")
		require.NoError(t, err)
		assert.Contains(t, out, `"verdict":"accepted"`)
	})

	t.Run("Unreadable File", func(t *testing.T) {
		_, err := execute(t, "", "run", filepath.Join(dir, "missing.dfa"), "a")
		assert.ErrorIs(t, err, domain.ErrFileUnreadable)
	})
}

func TestValidate(t *testing.T) {
	dir := setup(t)

	out, err := execute(t, "", "validate", writeFile(t, dir, "ok.dfa", endsInA))
	require.NoError(t, err)
	assert.Contains(t, out, "Automaton is valid!")

	_, err = execute(t, "", "validate", writeFile(t, dir, "bad.dfa", "q0,q1\nq0\nq1\nq0,a\n"))
	assert.ErrorIs(t, err, domain.ErrMalformedTransition)

	ghost := writeFile(t, dir, "ghost.dfa", "q0\nq0\nq0,q9\n")
	_, err = execute(t, "", "validate", ghost)
	assert.ErrorIs(t, err, domain.ErrUnknownState)

	out, err = execute(t, "", "--permissive", "validate", ghost)
	require.NoError(t, err)
	assert.Contains(t, out, "warning:")
}

func TestStoreCommands(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "ends-in-a.dfa", endsInA)

	_, err := execute(t, "", "store", "put", "ends", path)
	require.NoError(t, err)

	out, err := execute(t, "", "store", "ls")
	require.NoError(t, err)
	assert.Equal(t, "ends\n", out)

	out, err = execute(t, "", "store", "get", "ends")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "q0,q1\nq0\nq1\n"))

	out, err = execute(t, "", "run", "--stored", "ends", "aa")
	require.NoError(t, err)
	assert.Equal(t, "\"aa\"\tAccepted\n", out)

	_, err = execute(t, "", "store", "rm", "ends")
	require.NoError(t, err)

	_, err = execute(t, "", "store", "get", "ends")
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
}

func TestGraphAndDescribe(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "ends-in-a.dfa", endsInA)

	out, err := execute(t, "", "graph", path, "--input", "a")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "graph LR\n"))
	assert.Contains(t, out, "class s_q1 current;")

	out, err = execute(t, "", "describe", "--raw", path)
	require.NoError(t, err)
	assert.Contains(t, out, "# ends-in-a")

	out, err = execute(t, "", "describe", "--yaml", path)
	require.NoError(t, err)
	assert.Contains(t, out, "initial: q0")
}

func TestConsoleIsDefault(t *testing.T) {
	dir := setup(t)
	path := writeFile(t, dir, "ends-in-a.dfa", endsInA)

	out, err := execute(t, "2\n"+path+"\nbba\nn\n")
	require.NoError(t, err)
	assert.Contains(t, out, "1 - Enter DFA 2 - Read DFA\n")
	assert.Contains(t, out, "Accepted\n")

	// Input closing mid-dialogue is a clean exit.
	_, err = execute(t, "1\nq0\n")
	assert.NoError(t, err)
}
