package store

import (
	"log"
	"time"

	"github.com/gocql/gocql"

	"vendorhub_back_end/internal/models"
)

// AuditStore journalise les opérations dans la table audit_logs.
// On ne trace que l'identifiant d'opération et la catégorie de résultat :
// jamais de mot de passe, jamais de hash.
type AuditStore struct {
	session *gocql.Session
}

func NewAuditStore(session *gocql.Session) *AuditStore {
	return &AuditStore{session: session}
}

// LogAction enregistre une opération réussie, de façon asynchrone pour ne
// pas ralentir la requête
func (s *AuditStore) LogAction(userID, userEmail, action, resource, ip string) {
	go s.write(models.AuditLog{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		UserEmail: userEmail,
		Action:    action,
		Resource:  resource,
		Success:   true,
		IPAddress: ip,
		CreatedAt: time.Now(),
	})
}

// LogFailedAction enregistre une opération échouée (catégorie d'erreur
// uniquement)
func (s *AuditStore) LogFailedAction(userID, userEmail, action, resource, ip, errCategory string) {
	go s.write(models.AuditLog{
		ID:        gocql.TimeUUID(),
		UserID:    userID,
		UserEmail: userEmail,
		Action:    action,
		Resource:  resource,
		Success:   false,
		Error:     errCategory,
		IPAddress: ip,
		CreatedAt: time.Now(),
	})
}

func (s *AuditStore) write(entry models.AuditLog) {
	err := s.session.Query(`INSERT INTO audit_logs (id, user_id, user_email, action, resource, success, error, ip_address, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.UserID, entry.UserEmail, entry.Action, entry.Resource,
		entry.Success, entry.Error, entry.IPAddress, entry.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur enregistrement log audit: %v", err)
	}
}
