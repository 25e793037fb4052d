package store

import (
	"context"
	"errors"
	"time"

	"github.com/gocql/gocql"
)

// L'enregistrement demo est un singleton : toujours la même clé
const demoSingletonID = 0

// DemoStore : drapeau global contrôlant l'affichage des données d'exemple
type DemoStore struct {
	session *gocql.Session
}

func NewDemoStore(session *gocql.Session) *DemoStore {
	return &DemoStore{session: session}
}

// Get retourne l'état courant. Sans enregistrement, les données d'exemple
// sont visibles par défaut.
func (s *DemoStore) Get(ctx context.Context) (bool, error) {
	var visible bool
	err := s.session.Query("SELECT visible FROM demo WHERE id = ?", demoSingletonID).
		WithContext(ctx).Scan(&visible)
	if errors.Is(err, gocql.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, storageErr("demo.select", err)
	}
	return visible, nil
}

// Set écrit l'état (upsert du singleton)
func (s *DemoStore) Set(ctx context.Context, visible bool) error {
	err := s.session.Query("INSERT INTO demo (id, visible, updated_at) VALUES (?, ?, ?)",
		demoSingletonID, visible, time.Now()).
		WithContext(ctx).Exec()
	if err != nil {
		return storageErr("demo.upsert", err)
	}
	return nil
}

// Toggle inverse l'état et retourne la nouvelle valeur
func (s *DemoStore) Toggle(ctx context.Context) (bool, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return false, err
	}
	if err := s.Set(ctx, !current); err != nil {
		return false, err
	}
	return !current, nil
}
