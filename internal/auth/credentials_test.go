package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/store"
)

// fakeUserStore : implémentation en mémoire du UserStore pour les tests
type fakeUserStore struct {
	byEmail map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*models.User)}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	copied := *u
	f.byEmail[u.Email] = &copied
	return nil
}

func (f *fakeUserStore) UpdatePassword(_ context.Context, userID, hash string) error {
	for _, u := range f.byEmail {
		if u.ID == userID {
			u.Password = hash
			u.UpdatedAt = time.Now()
			return nil
		}
	}
	return store.ErrNotFound
}

func TestRegisterThenVerify(t *testing.T) {
	a := NewAuthenticator(newFakeUserStore())
	ctx := context.Background()

	userID, err := a.RegisterUser(ctx, "a@b.com", "password123", "Acme")
	require.NoError(t, err)
	require.NotEmpty(t, userID)

	identity, err := a.VerifyCredentials(ctx, "a@b.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, "a@b.com", identity.Email)
	assert.Equal(t, "Acme", identity.Name)
}

func TestRegisterValidation(t *testing.T) {
	a := NewAuthenticator(newFakeUserStore())
	ctx := context.Background()

	cases := []struct {
		name, email, password, display string
	}{
		{"email vide", "", "password123", "Acme"},
		{"mot de passe vide", "a@b.com", "", "Acme"},
		{"nom vide", "a@b.com", "password123", ""},
		{"mot de passe trop court", "a@b.com", "court", "Acme"},
		{"email invalide", "pas-un-email", "password123", "Acme"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.RegisterUser(ctx, tc.email, tc.password, tc.display)
			assert.ErrorIs(t, err, store.ErrValidation)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	a := NewAuthenticator(newFakeUserStore())
	ctx := context.Background()

	_, err := a.RegisterUser(ctx, "a@b.com", "password123", "Acme")
	require.NoError(t, err)

	_, err = a.RegisterUser(ctx, "a@b.com", "autrepass123", "Autre")
	assert.ErrorIs(t, err, store.ErrConflict)
}

func TestVerifyCredentials_FailuresIndistinguishable(t *testing.T) {
	a := NewAuthenticator(newFakeUserStore())
	ctx := context.Background()

	_, err := a.RegisterUser(ctx, "a@b.com", "password123", "Acme")
	require.NoError(t, err)

	_, errWrongPassword := a.VerifyCredentials(ctx, "a@b.com", "wrong")
	_, errUnknownEmail := a.VerifyCredentials(ctx, "inconnu@b.com", "password123")

	require.Error(t, errWrongPassword)
	require.Error(t, errUnknownEmail)
	// Même contenu d'erreur : impossible d'énumérer les comptes
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	assert.ErrorIs(t, errWrongPassword, store.ErrAuthentication)
	assert.ErrorIs(t, errUnknownEmail, store.ErrAuthentication)
}

func TestVerifyCredentials_OAuthOnlyAccount(t *testing.T) {
	users := newFakeUserStore()
	_ = users.Insert(context.Background(), &models.User{
		ID:       uuid.NewString(),
		Email:    "social@b.com",
		Name:     "Social",
		Provider: "google",
	})

	a := NewAuthenticator(users)
	_, err := a.VerifyCredentials(context.Background(), "social@b.com", "nimporte")
	assert.ErrorIs(t, err, store.ErrAuthentication)
}

func TestChangePassword(t *testing.T) {
	a := NewAuthenticator(newFakeUserStore())
	ctx := context.Background()

	_, err := a.RegisterUser(ctx, "a@b.com", "password123", "Acme")
	require.NoError(t, err)

	err = a.ChangePassword(ctx, "a@b.com", "mauvais", "nouveaupass123")
	assert.ErrorIs(t, err, store.ErrAuthentication)

	err = a.ChangePassword(ctx, "a@b.com", "password123", "nouveaupass123")
	require.NoError(t, err)

	_, err = a.VerifyCredentials(ctx, "a@b.com", "password123")
	assert.ErrorIs(t, err, store.ErrAuthentication)
	_, err = a.VerifyCredentials(ctx, "a@b.com", "nouveaupass123")
	assert.NoError(t, err)
}

func TestResolveOrCreateUser_LinksExistingByEmail(t *testing.T) {
	users := newFakeUserStore()
	a := NewAuthenticator(users)
	b := NewBroker("secret-de-test", users)
	ctx := context.Background()

	userID, err := a.RegisterUser(ctx, "a@b.com", "password123", "Acme")
	require.NoError(t, err)

	// Un provider OAuth affirmant le même email se rattache au compte
	// existant au lieu d'en créer un second
	resolved, err := b.ResolveOrCreateUser(ctx, "a@b.com", "Acme via Google", OAuth{Provider: "google"})
	require.NoError(t, err)
	assert.Equal(t, userID, resolved.ID)
	assert.Len(t, users.byEmail, 1)
}

func TestResolveOrCreateUser_CreatesPasswordlessUser(t *testing.T) {
	users := newFakeUserStore()
	b := NewBroker("secret-de-test", users)

	created, err := b.ResolveOrCreateUser(context.Background(), "nouveau@b.com", "Nouveau", OAuth{Provider: "linkedin"})
	require.NoError(t, err)
	assert.Equal(t, "linkedin", created.Provider)
	assert.False(t, created.HasPassword())

	stored, err := users.FindByEmail(context.Background(), "nouveau@b.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)
}

func TestResolveOrCreateUser_CredentialNeverCreates(t *testing.T) {
	users := newFakeUserStore()
	b := NewBroker("secret-de-test", users)

	_, err := b.ResolveOrCreateUser(context.Background(), "inconnu@b.com", "", Credential{})
	assert.ErrorIs(t, err, store.ErrAuthentication)
	assert.Empty(t, users.byEmail)
}

func TestVerifyCredentials_StorageErrorPropagates(t *testing.T) {
	a := NewAuthenticator(&failingUserStore{})
	_, err := a.VerifyCredentials(context.Background(), "a@b.com", "password123")

	var storageErr *store.StorageError
	assert.True(t, errors.As(err, &storageErr))
}

type failingUserStore struct{}

func (f *failingUserStore) FindByEmail(context.Context, string) (*models.User, error) {
	return nil, &store.StorageError{Op: "users.select", Err: errors.New("connexion perdue")}
}
func (f *failingUserStore) FindByID(context.Context, string) (*models.User, error) {
	return nil, &store.StorageError{Op: "users.select", Err: errors.New("connexion perdue")}
}
func (f *failingUserStore) Insert(context.Context, *models.User) error {
	return &store.StorageError{Op: "users.insert", Err: errors.New("connexion perdue")}
}
func (f *failingUserStore) UpdatePassword(context.Context, string, string) error {
	return &store.StorageError{Op: "users.update_password", Err: errors.New("connexion perdue")}
}
