package store

import (
	"errors"
	"fmt"
)

// Taxonomie d'erreurs partagée entre les stores et la couche auth.
// Les handlers HTTP les traduisent en codes de statut.
var (
	// ErrValidation : entrée manquante ou malformée — faute de l'appelant
	ErrValidation = errors.New("champs requis manquants ou invalides")

	// ErrAuthentication : message volontairement générique pour ne jamais
	// révéler si l'email existe (anti-énumération de comptes)
	ErrAuthentication = errors.New("email ou mot de passe incorrect")

	// ErrConflict : inscription en doublon
	ErrConflict = errors.New("un compte avec cet email existe déjà")

	// ErrNotFound : ressource absente — souvent pas une vraie erreur
	ErrNotFound = errors.New("introuvable")
)

// StorageError enveloppe une panne de stockage (transitoire — l'appelant
// peut réessayer à un niveau supérieur, aucun retry ici)
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("erreur stockage (%s): %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
