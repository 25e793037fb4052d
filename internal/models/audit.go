package models

import (
	"time"

	"github.com/gocql/gocql"
)

// AuditLog trace une opération (identifiant d'opération et catégorie de
// résultat uniquement — jamais de mot de passe ni de hash)
type AuditLog struct {
	ID        gocql.UUID `json:"id"`
	UserID    string     `json:"user_id"`
	UserEmail string     `json:"user_email"`
	Action    string     `json:"action"`
	Resource  string     `json:"resource"`
	Success   bool       `json:"success"`
	Error     string     `json:"error,omitempty"`
	IPAddress string     `json:"ip_address,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
