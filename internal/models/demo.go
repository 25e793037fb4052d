package models

import "time"

// Demo : enregistrement singleton contrôlant l'affichage des données
// d'exemple dans l'interface
type Demo struct {
	Visible   bool      `json:"visible"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
