package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/store"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore : ce dont l'authentificateur a besoin de la couche stockage
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	Insert(ctx context.Context, u *models.User) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
}

// Authenticator vérifie les couples email / mot de passe contre les hashs
// stockés. Chaque opération touche le stockage exactement une fois par
// étape — pas de cache, pas de retry.
type Authenticator struct {
	users UserStore
}

func NewAuthenticator(users UserStore) *Authenticator {
	return &Authenticator{users: users}
}

// RegisterUser crée un compte local. Le mot de passe en clair n'est jamais
// stocké ni journalisé.
func (a *Authenticator) RegisterUser(ctx context.Context, email, password, name string) (string, error) {
	if name == "" || email == "" || password == "" {
		return "", store.ErrValidation
	}
	if len(password) < 8 {
		return "", fmt.Errorf("%w: le mot de passe doit contenir au moins 8 caractères", store.ErrValidation)
	}
	if !emailRegex.MatchString(email) {
		return "", fmt.Errorf("%w: format d'email invalide", store.ErrValidation)
	}

	_, err := a.users.FindByEmail(ctx, email)
	if err == nil {
		return "", store.ErrConflict
	}
	if !errors.Is(err, store.ErrNotFound) {
		return "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return "", err
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Password:  hash,
		Provider:  "local",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.users.Insert(ctx, user); err != nil {
		return "", err
	}

	log.Printf("✅ Utilisateur enregistré: %s", user.ID)
	return user.ID, nil
}

// VerifyCredentials vérifie un couple email / mot de passe. Toutes les
// causes d'échec (email inconnu, compte OAuth sans mot de passe, mauvais
// mot de passe) retournent la même erreur générique : un attaquant ne peut
// pas distinguer les comptes existants.
func (a *Authenticator) VerifyCredentials(ctx context.Context, email, password string) (*models.PublicUser, error) {
	if email == "" || password == "" {
		return nil, store.ErrAuthentication
	}

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return nil, store.ErrAuthentication
	}
	if err != nil {
		return nil, err
	}

	if !user.HasPassword() || !VerifyPassword(password, user.Password) {
		return nil, store.ErrAuthentication
	}

	pub := user.Public()
	return &pub, nil
}

// ChangePassword re-vérifie le mot de passe courant avant de stocker le
// nouveau hash
func (a *Authenticator) ChangePassword(ctx context.Context, email, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: le nouveau mot de passe doit contenir au moins 8 caractères", store.ErrValidation)
	}

	user, err := a.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrAuthentication
	}
	if err != nil {
		return err
	}

	if !user.HasPassword() || !VerifyPassword(currentPassword, user.Password) {
		return store.ErrAuthentication
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	return a.users.UpdatePassword(ctx, user.ID, hash)
}
