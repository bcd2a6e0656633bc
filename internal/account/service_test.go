package account

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

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

type fakeIssuer struct {
	token string
	err   error
}

func (f fakeIssuer) Issue(domain.Account) (string, error) { return f.token, f.err }

func newTestService(t *testing.T) (*Service, *storage.Memory, *recordedDraft) {
	t.Helper()
	store := storage.NewMemory()
	rec := &recordedDraft{}
	return NewService(store, rec, fakeIssuer{token: "signed-token"}, nil), store, rec
}

func actor() domain.Actor {
	return domain.Actor{ID: "admin-1", Name: "Root", Role: domain.RoleTopAdministrator}
}

func TestCreate(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Create(ctx, actor(), CreateInput{
		Name:   "  Ana Souza  ",
		Email:  "Ana@Example.COM ",
		Secret: "hunter22",
		Role:   "manager",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "Ana Souza", acct.Name)
	assert.Equal(t, "ana@example.com", acct.Email, "email is normalized on write")
	assert.Equal(t, domain.RoleManager, acct.Role)
	assert.True(t, acct.Active)
	assert.NotEqual(t, "hunter22", acct.SecretHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acct.SecretHash), []byte("hunter22")))

	stored, err := storage.LoadCollection[domain.Account](ctx, store, storage.KeyAccounts)
	require.NoError(t, err)
	require.Len(t, stored, 1)

	require.Len(t, rec.drafts, 1)
	assert.Equal(t, domain.OperationCreate, rec.drafts[0].Operation)
	assert.Equal(t, "account", rec.drafts[0].Entity)
	assert.Equal(t, domain.SeverityMedium, rec.drafts[0].Severity)
	assert.Equal(t, "admin-1", rec.drafts[0].ActorID)
}

func TestCreateValidation(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		in   CreateInput
		want error
	}{
		{"unknown role", CreateInput{Email: "a@b.c", Secret: "secret1", Role: "warlord"}, ErrInvalidInput},
		{"bad email", CreateInput{Email: "not-an-email", Secret: "secret1", Role: "manager"}, ErrInvalidInput},
		{"short secret", CreateInput{Email: "a@b.c", Secret: "abc", Role: "manager"}, ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, actor(), tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Empty(t, rec.drafts, "rejected input leaves no audit trail")
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, actor(), CreateInput{Email: "dup@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, actor(), CreateInput{Email: "DUP@example.com", Secret: "secret1", Role: "operator"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestPermissionsOnlyStickToTopAdministrators(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, actor(), CreateInput{
		Email: "root@example.com", Secret: "secret1", Role: "top_administrator",
		Permissions: []string{"billing"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"billing"}, admin.Permissions)

	mgr, err := svc.Create(ctx, actor(), CreateInput{
		Email: "mgr@example.com", Secret: "secret1", Role: "manager",
		Permissions: []string{"billing"},
	})
	require.NoError(t, err)
	assert.Nil(t, mgr.Permissions, "custom permissions are a top-administrator concept")
}

func TestUpdate(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Create(ctx, actor(), CreateInput{Email: "u@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)

	name := "New Name"
	active := false
	updated, err := svc.Update(ctx, actor(), acct.ID, UpdateInput{Name: &name, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.False(t, updated.Active)
	assert.Equal(t, domain.RoleManager, updated.Role, "role never changes after creation")

	require.Len(t, rec.drafts, 2)
	assert.Equal(t, domain.OperationEdit, rec.drafts[1].Operation)
}

func TestUpdateRejectsTakenEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, actor(), CreateInput{Email: "first@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)
	second, err := svc.Create(ctx, actor(), CreateInput{Email: "second@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)

	email := "First@example.com"
	_, err = svc.Update(ctx, actor(), second.ID, UpdateInput{Email: &email})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateMissingAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Update(context.Background(), actor(), "ghost", UpdateInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, store, rec := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Create(ctx, actor(), CreateInput{Email: "gone@example.com", Secret: "secret1", Role: "operator"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, actor(), acct.ID))

	stored, err := storage.LoadCollection[domain.Account](ctx, store, storage.KeyAccounts)
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.Len(t, rec.drafts, 2)
	assert.Equal(t, domain.OperationDelete, rec.drafts[1].Operation)
	assert.Equal(t, domain.SeverityHigh, rec.drafts[1].Severity)

	assert.ErrorIs(t, svc.Delete(ctx, actor(), acct.ID), ErrNotFound)
}

func TestDeleteProtectsTopAdministrators(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	admin, err := svc.Create(ctx, actor(), CreateInput{Email: "root@example.com", Secret: "secret1", Role: "top_administrator"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, actor(), admin.ID), ErrProtectedAccount)

	stored, err := storage.LoadCollection[domain.Account](ctx, store, storage.KeyAccounts)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAuthenticate(t *testing.T) {
	svc, _, rec := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, actor(), CreateInput{Email: "login@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)
	auditsBefore := len(rec.drafts)

	acct, token, err := svc.Authenticate(ctx, "LOGIN@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, acct.ID)
	assert.Equal(t, "signed-token", token)
	assert.Len(t, rec.drafts, auditsBefore, "logins are not audited")

	_, _, err = svc.Authenticate(ctx, "login@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	acct, err := svc.Create(ctx, actor(), CreateInput{Email: "frozen@example.com", Secret: "secret1", Role: "manager"})
	require.NoError(t, err)

	inactive := false
	_, err = svc.Update(ctx, actor(), acct.ID, UpdateInput{Active: &inactive})
	require.NoError(t, err)

	_, _, err = svc.Authenticate(ctx, "frozen@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSeedBootstrap(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemory()

	seeded, err := SeedBootstrap(ctx, store, "bootstrap-secret")
	require.NoError(t, err)
	require.NotNil(t, seeded)
	assert.Equal(t, domain.RoleTopAdministrator, seeded.Role)

	again, err := SeedBootstrap(ctx, store, "bootstrap-secret")
	require.NoError(t, err)
	assert.Nil(t, again, "seeding is a no-op once any account exists")

	accounts, err := storage.LoadCollection[domain.Account](ctx, store, storage.KeyAccounts)
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}
