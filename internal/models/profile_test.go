package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func filledBasicInfo() BasicInfo {
	return BasicInfo{
		CompanyName:        "Acme",
		CompanyWebsite:     "https://acme.example",
		CompanyDescription: "Fournisseur industriel",
		YearEstablished:    "1999",
		NumberOfEmployees:  "51-200",
		BusinessType:       "manufacturer",
	}
}

func filledContactInfo() ContactInfo {
	return ContactInfo{
		AddressLine1: "1 rue de la Paix",
		City:         "Paris",
		State:        "IDF",
		PostalCode:   "75002",
		Country:      "France",
		Phone:        "+33 1 23 45 67 89",
		Email:        "contact@acme.example",
	}
}

func TestCompletionPercentage_AllEmpty(t *testing.T) {
	assert.Equal(t, 0, CompletionPercentage(BasicInfo{}, ContactInfo{}))
}

func TestCompletionPercentage_AllFilled(t *testing.T) {
	assert.Equal(t, 100, CompletionPercentage(filledBasicInfo(), filledContactInfo()))
}

func TestCompletionPercentage_BasicOnly(t *testing.T) {
	// 6 champs sur 13 → round(600/13) = 46
	assert.Equal(t, 46, CompletionPercentage(filledBasicInfo(), ContactInfo{}))
}

func TestCompletionPercentage_SingleField(t *testing.T) {
	// 1 champ sur 13 → round(100/13) = 8
	basic := BasicInfo{CompanyName: "Acme"}
	assert.Equal(t, 8, CompletionPercentage(basic, ContactInfo{}))
}

func TestCompletionPercentage_WhitespaceDoesNotCount(t *testing.T) {
	basic := BasicInfo{
		CompanyName:    "   ",
		CompanyWebsite: "\t\n",
	}
	assert.Equal(t, 0, CompletionPercentage(basic, ContactInfo{}))
}

func TestCompletionPercentage_AddressLine2Untracked(t *testing.T) {
	// addressLine2 est optionnel : il n'entre pas dans les 13 champs suivis
	contact := ContactInfo{AddressLine2: "Bâtiment B"}
	assert.Equal(t, 0, CompletionPercentage(BasicInfo{}, contact))
}

func TestCompletionPercentage_Pure(t *testing.T) {
	basic, contact := filledBasicInfo(), filledContactInfo()
	first := CompletionPercentage(basic, contact)
	second := CompletionPercentage(basic, contact)
	assert.Equal(t, first, second)
	// Les entrées ne sont pas modifiées
	assert.Equal(t, filledBasicInfo(), basic)
	assert.Equal(t, filledContactInfo(), contact)
}

func TestEmptyProfile(t *testing.T) {
	p := EmptyProfile("a@b.com")
	assert.Equal(t, "a@b.com", p.Email)
	assert.Equal(t, "a@b.com", p.ContactInfo.Email)
	assert.Equal(t, BasicInfo{}, p.BasicInfo)
	assert.Equal(t, 0, p.CompletionPercentage)
}
