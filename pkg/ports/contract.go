package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/dfakit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// contractAutomaton accepts one or more 'a' symbols.
func contractAutomaton(t *testing.T) *domain.Automaton {
	t.Helper()
	reg := domain.NewRegistry()
	_, err := reg.AddState("q0")
	require.NoError(t, err)
	_, err = reg.AddState("q1")
	require.NoError(t, err)
	require.NoError(t, reg.SetInitial("q0"))
	require.NoError(t, reg.SetFinal([]string{"q1"}))

	return domain.NewAutomaton(reg, []domain.Transition{
		{From: "q0", Symbol: 'a', To: "q1"},
		{From: "q1", Symbol: 'a', To: "q1"},
	})
}

// RunAutomatonStoreContract runs a suite of tests to verify that an AutomatonStore
// implementation adheres to the defined interface contract.
func RunAutomatonStoreContract(t *testing.T, store AutomatonStore) {
	ctx := context.Background()
	name := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		a := contractAutomaton(t)

		err := store.Save(ctx, name, a)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err, "Load should not return error")

		assert.Equal(t, a.States(), loaded.States())
		initial, err := loaded.Initial()
		require.NoError(t, err)
		assert.Equal(t, "q0", initial.Name)
		assert.Equal(t, a.Finals(), loaded.Finals())
		assert.Equal(t, a.Table("q0"), loaded.Table("q0"))
		assert.Equal(t, a.Table("q1"), loaded.Table("q1"))
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractAutomaton(t)))

		reg := domain.NewRegistry()
		_, err := reg.AddState("only")
		require.NoError(t, err)
		require.NoError(t, reg.SetInitial("only"))
		require.NoError(t, store.Save(ctx, name, domain.NewAutomaton(reg, nil)))

		loaded, err := store.Load(ctx, name)
		require.NoError(t, err)
		assert.Len(t, loaded.States(), 1)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, name, contractAutomaton(t)))

		err := store.Delete(ctx, name)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, name)
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound, "Load after Delete should return ErrAutomatonNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := name + "-1"
		id2 := name + "-2"
		_ = store.Save(ctx, id1, contractAutomaton(t))
		_ = store.Save(ctx, id2, contractAutomaton(t))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id1)
		assert.Contains(t, names, id2)
	})

	t.Run("List Temp-Like Name", func(t *testing.T) {
		id := "tmp-" + name
		require.NoError(t, store.Save(ctx, id, contractAutomaton(t)))
		defer func() { _ = store.Delete(ctx, id) }()

		_, err := store.Load(ctx, id)
		require.NoError(t, err)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, id)
	})
}
