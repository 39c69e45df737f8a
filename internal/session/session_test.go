package session

import (
	"context"
	"testing"

	"github.com/mark3labs/secconsole/internal/nats"
	"github.com/mark3labs/secconsole/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	emb, err := nats.Start(context.Background(), t.TempDir())
	require.NoError(t, err, "failed to start NATS")
	t.Cleanup(func() { _ = emb.Close() })
	return NewStore(emb.JetStream, emb.Stream)
}

func TestDraftLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	id := "onboard okta"

	t.Run("no draft before save", func(t *testing.T) {
		_, err := store.LoadDraft(ctx, id)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("latest save wins", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, Draft{
			Wizard:   id,
			Index:    0,
			Data:     wizard.Data{"name": "Okta"},
			Statuses: []wizard.Status{wizard.StatusPending, wizard.StatusPending},
		}))
		require.NoError(t, store.SaveDraft(ctx, Draft{
			Wizard:   id,
			Index:    1,
			Data:     wizard.Data{"name": "Okta prod", "kind": "okta"},
			Statuses: []wizard.Status{wizard.StatusValid, wizard.StatusPending},
		}))

		draft, err := store.LoadDraft(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 1, draft.Index)
		assert.Equal(t, wizard.Data{"name": "Okta prod", "kind": "okta"}, draft.Data)
		assert.Equal(t, []wizard.Status{wizard.StatusValid, wizard.StatusPending}, draft.Statuses)
		assert.False(t, draft.SavedAt.IsZero())

		state, err := store.LoadState(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, 2, state.Saves)
	})

	t.Run("discard clears draft", func(t *testing.T) {
		require.NoError(t, store.DiscardDraft(ctx, id))
		_, err := store.LoadDraft(ctx, id)
		assert.ErrorIs(t, err, ErrNoDraft)
	})

	t.Run("drafts are isolated per wizard", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, Draft{Wizard: "other", Data: wizard.Data{"name": "S3"}}))
		_, err := store.LoadDraft(ctx, id)
		assert.ErrorIs(t, err, ErrNoDraft)

		draft, err := store.LoadDraft(ctx, "other")
		require.NoError(t, err)
		assert.Equal(t, "S3", draft.Data["name"])
	})
}

func TestInvalidWizardID(t *testing.T) {
	store := newTestStore(t)
	err := store.SaveDraft(context.Background(), Draft{Wizard: "..."})
	assert.Error(t, err)
}

func TestAutoSave(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c, err := wizard.New([]wizard.Step{{ID: "name"}, {ID: "review"}})
	require.NoError(t, err)

	stop := store.AutoSave(ctx, "autosave", c)
	c.SetSharedData(wizard.Data{"name": "CloudTrail"})
	c.SetStepStatus(0, wizard.StatusValid)
	require.NoError(t, c.GoNext())
	stop()
	c.SetSharedData(wizard.Data{"name": "ignored"})

	draft, err := store.LoadDraft(ctx, "autosave")
	require.NoError(t, err)
	assert.Equal(t, 1, draft.Index)
	assert.Equal(t, wizard.Data{"name": "CloudTrail"}, draft.Data)

	restored, err := wizard.New([]wizard.Step{{ID: "name"}, {ID: "review"}})
	require.NoError(t, err)
	restored.Hydrate(draft.Data)
	assert.Equal(t, draft.Data, restored.SharedData())
}

func TestStateApply_BadMeta(t *testing.T) {
	st := &State{}
	err := st.Apply(Event{Action: ActionSave, Meta: []byte("{not json")})
	assert.Error(t, err)
	assert.Nil(t, st.Draft)
}
