package person

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"syndik/internal/domain"
	"syndik/internal/storage"
)

type recordedDraft struct {
	drafts []domain.EntryDraft
}

func (r *recordedDraft) Record(_ context.Context, draft domain.EntryDraft) (domain.AuditEntry, error) {
	r.drafts = append(r.drafts, draft)
	return domain.AuditEntry{ID: "entry-1"}, nil
}

func newTestService(t *testing.T) (*Service, *storage.Memory, *recordedDraft) {
	t.Helper()
	store := storage.NewMemory()
	rec := &recordedDraft{}
	return NewService(store, rec, nil), store, rec
}

func seedPeople(t *testing.T, store storage.Store, people ...domain.Person) {
	t.Helper()
	require.NoError(t, storage.SaveCollection(context.Background(), store, storage.KeyPeople, people))
}

func operator(condo string) domain.Actor {
	return domain.Actor{ID: "op-1", Name: "Op", Role: domain.RoleOperator, CondominiumID: condo}
}

func topAdmin() domain.Actor {
	return domain.Actor{ID: "adm-1", Name: "Root", Role: domain.RoleTopAdministrator}
}

const validCPF = "52998224725"

func TestCreate(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, operator("5"), Input{
		Name:          "  Maria Silva ",
		CPF:           validCPF,
		Phone:         "11987654321",
		Unit:          "12B",
		CondominiumID: "5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", p.Name)
	assert.Equal(t, "(11) 98765-4321", p.Phone)
	assert.True(t, p.Active)

	stored, err := storage.LoadCollection[domain.Person](ctx, store, storage.KeyPeople)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	require.Len(t, rec.drafts, 1)
	assert.Equal(t, domain.OperationCreate, rec.drafts[0].Operation)
	assert.Equal(t, "person", rec.drafts[0].Entity)
	assert.Equal(t, domain.SeverityLow, rec.drafts[0].Severity)
}

func TestCreateScopeDenied(t *testing.T) {
	svc, _, rec := newTestService(t)

	// An operator of site 5 cannot create records in site 9.
	_, err := svc.Create(context.Background(), operator("5"), Input{
		Name:          "Intruso",
		CondominiumID: "9",
	})
	assert.ErrorIs(t, err, ErrScopeDenied)
	assert.Empty(t, rec.drafts)
}

func TestCreatePermissionDenied(t *testing.T) {
	svc, _, _ := newTestService(t)

	viewer := domain.Actor{ID: "t-1", Role: domain.RoleTemporary, CondominiumID: "5"}
	_, err := svc.Create(context.Background(), viewer, Input{Name: "X", CondominiumID: "5"})
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestCreateValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, operator("5"), Input{Name: "  ", CondominiumID: "5"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, operator("5"), Input{Name: "X", CPF: "11111111111", CondominiumID: "5"})
	assert.ErrorIs(t, err, ErrInvalidCPF)

	_, err = svc.Create(ctx, operator("5"), Input{Name: "X", CondominiumID: "5"})
	assert.NoError(t, err, "CPF is optional")
}

func TestListScoping(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPeople(t, store,
		domain.Person{ID: "p1", Name: "A", CondominiumID: "5"},
		domain.Person{ID: "p2", Name: "B", CondominiumID: "9"},
		domain.Person{ID: "p3", Name: "C", CondominiumID: "5"},
	)

	t.Run("top administrator sees everything on empty filter", func(t *testing.T) {
		all, err := svc.List(ctx, topAdmin(), "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("top administrator can filter any site", func(t *testing.T) {
		site9, err := svc.List(ctx, topAdmin(), "9")
		require.NoError(t, err)
		require.Len(t, site9, 1)
		assert.Equal(t, "p2", site9[0].ID)
	})

	t.Run("empty filter degrades to the caller's own site", func(t *testing.T) {
		own, err := svc.List(ctx, operator("5"), "")
		require.NoError(t, err)
		assert.Len(t, own, 2)
	})

	t.Run("explicit own site passes", func(t *testing.T) {
		own, err := svc.List(ctx, operator("5"), "5")
		require.NoError(t, err)
		assert.Len(t, own, 2)
	})

	t.Run("foreign site is refused", func(t *testing.T) {
		_, err := svc.List(ctx, operator("5"), "9")
		assert.ErrorIs(t, err, ErrScopeDenied)
	})
}

func TestGet(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPeople(t, store,
		domain.Person{ID: "p1", Name: "A", CondominiumID: "5"},
		domain.Person{ID: "p2", Name: "B", CondominiumID: "9"},
	)

	p, err := svc.Get(ctx, operator("5"), "p1")
	require.NoError(t, err)
	assert.Equal(t, "A", p.Name)

	_, err = svc.Get(ctx, operator("5"), "p2")
	assert.ErrorIs(t, err, ErrScopeDenied)

	_, err = svc.Get(ctx, operator("5"), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)

	p, err = svc.Get(ctx, topAdmin(), "p2")
	require.NoError(t, err)
	assert.Equal(t, "B", p.Name)
}

func TestUpdate(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	seedPeople(t, store, domain.Person{ID: "p1", Name: "Old", Unit: "1A", CondominiumID: "5"})

	p, err := svc.Update(ctx, operator("5"), "p1", Input{Name: "New", Unit: "2B"})
	require.NoError(t, err)
	assert.Equal(t, "New", p.Name)
	assert.Equal(t, "2B", p.Unit)

	stored, err := storage.LoadCollection[domain.Person](ctx, store, storage.KeyPeople)
	require.NoError(t, err)
	assert.Equal(t, "New", stored[0].Name)

	require.Len(t, rec.drafts, 1)
	assert.Equal(t, domain.OperationEdit, rec.drafts[0].Operation)
}

func TestUpdateBlankFieldsKeepCurrentValues(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	seedPeople(t, store, domain.Person{ID: "p1", Name: "Keep", Email: "keep@x.com", CondominiumID: "5"})

	p, err := svc.Update(ctx, operator("5"), "p1", Input{Unit: "3C"})
	require.NoError(t, err)
	assert.Equal(t, "Keep", p.Name)
	assert.Equal(t, "keep@x.com", p.Email)
	assert.Equal(t, "3C", p.Unit)
}

func TestUpdateDeniedOutOfScope(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedPeople(t, store, domain.Person{ID: "p1", Name: "Foreign", CondominiumID: "9"})

	_, err := svc.Update(context.Background(), operator("5"), "p1", Input{Name: "X"})
	assert.ErrorIs(t, err, ErrScopeDenied)
}

func TestDeleteRequiresDeleteFlag(t *testing.T) {
	svc, store, _ := newTestService(t)
	seedPeople(t, store, domain.Person{ID: "p1", CondominiumID: "5"})

	// Operators create and edit but never delete.
	err := svc.Delete(context.Background(), operator("5"), "p1")
	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestDelete(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	seedPeople(t, store, domain.Person{ID: "p1", Name: "Gone", CondominiumID: "5"})

	manager := domain.Actor{ID: "m-1", Role: domain.RoleManager, CondominiumID: "5"}
	require.NoError(t, svc.Delete(ctx, manager, "p1"))

	stored, err := storage.LoadCollection[domain.Person](ctx, store, storage.KeyPeople)
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.Len(t, rec.drafts, 1)
	assert.Equal(t, domain.OperationDelete, rec.drafts[0].Operation)

	assert.ErrorIs(t, svc.Delete(ctx, manager, "p1"), ErrNotFound)
}
