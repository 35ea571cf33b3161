package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/dfakit/pkg/adapters/file"
	"github.com/aretw0/dfakit/pkg/descriptor"
	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/aretw0/dfakit/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.New(t.TempDir())
	ports.RunAutomatonStoreContract(t, store)
}

func TestFileStore_WritesDescriptor(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	a, err := descriptor.Parse("q0,q1\nq0\nq1\nq0,a,q1\n")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "plus", a))

	data, err := os.ReadFile(filepath.Join(dir, "plus.dfa"))
	require.NoError(t, err)
	assert.Equal(t, "q0,q1\nq0\nq1\nq0,a,q1\n", string(data))

	// No temp files left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileStore_InvalidNames(t *testing.T) {
	store := file.New(t.TempDir())
	ctx := context.Background()

	for _, name := range []string{"", "../escape", `a\b`, ".", "..", ".hidden", ".tmp-plus"} {
		_, err := store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrInvalidName, "name %q", name)
		assert.NotErrorIs(t, err, domain.ErrAutomatonNotFound)
	}
}

func TestFileStore_ListMissingDir(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "nope"))
	names, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}
