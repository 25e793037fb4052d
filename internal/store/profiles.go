package store

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"

	"vendorhub_back_end/internal/models"
)

// ProfileStore : profils vendeurs, partitionnés par email
type ProfileStore struct {
	session *gocql.Session
}

func NewProfileStore(session *gocql.Session) *ProfileStore {
	return &ProfileStore{session: session}
}

func (s *ProfileStore) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	var (
		userID               string
		b                    models.BasicInfo
		c                    models.ContactInfo
		completion           int
		createdAt, updatedAt time.Time
	)

	err := s.session.Query(`SELECT user_id, company_name, company_website, company_description,
		year_established, number_of_employees, business_type,
		address_line1, address_line2, city, state, postal_code, country, phone, contact_email,
		completion_percentage, created_at, updated_at
		FROM profiles WHERE email = ?`, email).
		WithContext(ctx).Scan(
		&userID, &b.CompanyName, &b.CompanyWebsite, &b.CompanyDescription,
		&b.YearEstablished, &b.NumberOfEmployees, &b.BusinessType,
		&c.AddressLine1, &c.AddressLine2, &c.City, &c.State, &c.PostalCode, &c.Country, &c.Phone, &c.Email,
		&completion, &createdAt, &updatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("profiles.select", err)
	}

	return &models.Profile{
		UserID:               userID,
		Email:                email,
		BasicInfo:            b,
		ContactInfo:          c,
		CompletionPercentage: completion,
		CreatedAt:            createdAt,
		UpdatedAt:            updatedAt,
	}, nil
}

// Upsert écrit le profil complet en un seul aller-retour. Un INSERT
// ScyllaDB est un upsert par clé primaire : pas de fenêtre
// lecture-modification-écriture, la dernière écriture gagne.
func (s *ProfileStore) Upsert(ctx context.Context, p *models.Profile) error {
	now := time.Now()
	err := s.session.Query(`INSERT INTO profiles (email, user_id, company_name, company_website,
		company_description, year_established, number_of_employees, business_type,
		address_line1, address_line2, city, state, postal_code, country, phone, contact_email,
		completion_percentage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Email, p.UserID,
		p.BasicInfo.CompanyName, p.BasicInfo.CompanyWebsite, p.BasicInfo.CompanyDescription,
		p.BasicInfo.YearEstablished, p.BasicInfo.NumberOfEmployees, p.BasicInfo.BusinessType,
		p.ContactInfo.AddressLine1, p.ContactInfo.AddressLine2, p.ContactInfo.City,
		p.ContactInfo.State, p.ContactInfo.PostalCode, p.ContactInfo.Country,
		p.ContactInfo.Phone, p.ContactInfo.Email,
		p.CompletionPercentage, now, now).
		WithContext(ctx).Exec()
	if err != nil {
		return storageErr("profiles.upsert", err)
	}
	return nil
}

// Delete supprime le profil et indique si une ligne existait.
// Idempotent : false (jamais d'erreur) si le profil est déjà absent.
func (s *ProfileStore) Delete(ctx context.Context, email string) (bool, error) {
	applied, err := s.session.Query("DELETE FROM profiles WHERE email = ? IF EXISTS", email).
		WithContext(ctx).ScanCAS()
	if err != nil {
		return false, storageErr("profiles.delete", err)
	}
	return applied, nil
}
