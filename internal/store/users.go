package store

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"vendorhub_back_end/internal/models"
)

// UserStore : accès à la table users et à la table de correspondance
// users_by_email (ScyllaDB partitionne par clé primaire, il faut les deux)
type UserStore struct {
	session *gocql.Session
}

func NewUserStore(session *gocql.Session) *UserStore {
	return &UserStore{session: session}
}

// FindByEmail résout d'abord l'user_id via users_by_email puis charge
// l'utilisateur. L'email est la clé de jointure entre providers.
func (s *UserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var userID gocql.UUID
	err := s.session.Query("SELECT user_id FROM users_by_email WHERE email = ?", email).
		WithContext(ctx).Scan(&userID)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("users_by_email.select", err)
	}

	return s.FindByID(ctx, userID.String())
}

func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var (
		email, password, name, companyName, provider string
		createdAt, updatedAt                         time.Time
	)
	err = s.session.Query(`SELECT email, password, name, company_name, provider, created_at, updated_at
		FROM users WHERE user_id = ?`, gocql.UUID(uid)).
		WithContext(ctx).Scan(&email, &password, &name, &companyName, &provider, &createdAt, &updatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("users.select", err)
	}

	return &models.User{
		ID:          id,
		Email:       email,
		Password:    password,
		Name:        name,
		CompanyName: companyName,
		Provider:    provider,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

// Insert écrit l'utilisateur dans les deux tables
func (s *UserStore) Insert(ctx context.Context, u *models.User) error {
	uid, err := uuid.Parse(u.ID)
	if err != nil {
		return ErrValidation
	}
	userUUID := gocql.UUID(uid)

	err = s.session.Query(`INSERT INTO users (user_id, email, password, name, company_name, provider, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userUUID, u.Email, u.Password, u.Name, u.CompanyName, u.Provider, u.CreatedAt, u.UpdatedAt).
		WithContext(ctx).Exec()
	if err != nil {
		return storageErr("users.insert", err)
	}

	err = s.session.Query("INSERT INTO users_by_email (email, user_id) VALUES (?, ?)", u.Email, userUUID).
		WithContext(ctx).Exec()
	if err != nil {
		return storageErr("users_by_email.insert", err)
	}

	return nil
}

// UpdatePassword remplace le hash et met à jour le timestamp
func (s *UserStore) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return ErrValidation
	}

	err = s.session.Query("UPDATE users SET password = ?, updated_at = ? WHERE user_id = ?",
		passwordHash, time.Now(), gocql.UUID(uid)).
		WithContext(ctx).Exec()
	if err != nil {
		return storageErr("users.update_password", err)
	}
	return nil
}
