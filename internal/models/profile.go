package models

import (
	"math"
	"strings"
	"time"
)

type BasicInfo struct {
	CompanyName        string `json:"companyName"`
	CompanyWebsite     string `json:"companyWebsite"`
	CompanyDescription string `json:"companyDescription"`
	YearEstablished    string `json:"yearEstablished"`
	NumberOfEmployees  string `json:"numberOfEmployees"`
	BusinessType       string `json:"businessType"`
}

type ContactInfo struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

type Profile struct {
	UserID               string      `json:"userId"`
	Email                string      `json:"email"`
	BasicInfo            BasicInfo   `json:"basicInfo"`
	ContactInfo          ContactInfo `json:"contactInfo"`
	CompletionPercentage int         `json:"completionPercentage"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

// EmptyProfile retourne la forme vide renvoyée aux nouveaux vendeurs :
// tous les champs à vide, 0%, avec l'email de session pré-rempli
func EmptyProfile(email string) Profile {
	return Profile{
		Email:       email,
		BasicInfo:   BasicInfo{},
		ContactInfo: ContactInfo{Email: email},
	}
}

// CompletionPercentage calcule le pourcentage de complétion du profil.
// 13 champs suivis : 6 dans basicInfo, 7 dans contactInfo (addressLine2 est
// optionnel et ne compte pas). Un champ est complété si sa valeur contient
// autre chose que des espaces. Fonction pure, sans I/O.
func CompletionPercentage(basic BasicInfo, contact ContactInfo) int {
	fields := []string{
		basic.CompanyName,
		basic.CompanyWebsite,
		basic.CompanyDescription,
		basic.YearEstablished,
		basic.NumberOfEmployees,
		basic.BusinessType,
		contact.AddressLine1,
		contact.City,
		contact.State,
		contact.PostalCode,
		contact.Country,
		contact.Phone,
		contact.Email,
	}

	completed := 0
	for _, v := range fields {
		if strings.TrimSpace(v) != "" {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(fields)) * 100))
}
