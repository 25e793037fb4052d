package models

import "time"

type User struct {
	ID          string    `json:"user_id"`
	Email       string    `json:"email"`
	Name        string    `json:"name,omitempty"`
	CompanyName string    `json:"companyName,omitempty"`
	Password    string    `json:"-"`
	Provider    string    `json:"provider,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PublicUser : identité exposée aux clients — jamais le hash du mot de passe
type PublicUser struct {
	ID    string `json:"user_id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (u *User) Public() PublicUser {
	name := u.Name
	if name == "" {
		name = u.CompanyName
	}
	return PublicUser{ID: u.ID, Email: u.Email, Name: name}
}

// HasPassword indique si le compte peut se connecter par identifiants
// (les comptes créés via OAuth n'ont pas de hash)
func (u *User) HasPassword() bool {
	return u.Password != ""
}
