package auth

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/store"
)

// Source identifie l'origine d'une tentative d'authentification :
// identifiants locaux ou provider OAuth. Union fermée — seuls Credential
// et OAuth l'implémentent.
type Source interface {
	Label() string
	sealed()
}

// Credential : authentification par email + mot de passe
type Credential struct{}

func (Credential) Label() string { return "local" }
func (Credential) sealed()       {}

// OAuth : authentification via un provider externe (google, linkedin)
type OAuth struct {
	Provider string
}

func (o OAuth) Label() string { return o.Provider }
func (OAuth) sealed()         {}

// ResolveOrCreateUser applique la politique de liaison de comptes :
// l'email est la clé de jointure entre providers. Un provider OAuth qui
// affirme un email est autorisé à s'authentifier comme le compte existant
// portant cet email, quel que soit son mode de création ("allow dangerous
// email account linking" — comportement documenté, pas un bug). Si aucun
// compte n'existe, une identité OAuth crée un utilisateur sans mot de passe.
func (b *Broker) ResolveOrCreateUser(ctx context.Context, email, name string, src Source) (*models.User, error) {
	existing, err := b.users.FindByEmail(ctx, email)
	if err == nil {
		// Compte existant : on s'y rattache, peu importe le provider d'origine
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if _, ok := src.(Credential); ok {
		// Les identifiants ne créent jamais de compte implicitement :
		// l'inscription passe par RegisterUser
		return nil, store.ErrAuthentication
	}

	now := time.Now()
	user := &models.User{
		ID:        uuid.NewString(),
		Email:     email,
		Name:      name,
		Provider:  src.Label(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := b.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	log.Printf("✅ Nouvel utilisateur créé via %s", src.Label())
	return user, nil
}
