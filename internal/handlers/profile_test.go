package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendorhub_back_end/internal/models"
	"vendorhub_back_end/internal/services"
	"vendorhub_back_end/internal/store"
)

// ================== FAKES ==================

type fakeProfileStore struct {
	byEmail map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{byEmail: make(map[string]*models.Profile)}
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	if p, ok := f.byEmail[email]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakeProfileStore) Upsert(_ context.Context, p *models.Profile) error {
	copied := *p
	f.byEmail[p.Email] = &copied
	return nil
}

func (f *fakeProfileStore) Delete(_ context.Context, email string) (bool, error) {
	if _, ok := f.byEmail[email]; !ok {
		return false, nil
	}
	delete(f.byEmail, email)
	return true, nil
}

type fakeUserDirectory struct {
	user *models.User
}

func (f *fakeUserDirectory) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, store.ErrNotFound
}

func setupProfileRouter(profiles *fakeProfileStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := &fakeUserDirectory{user: &models.User{
		ID:        "user-1",
		Email:     "a@b.com",
		Name:      "Acme",
		Provider:  "local",
		CreatedAt: time.Now(),
	}}
	h := NewProfileHandler(profiles, users, services.NewVendorIndex(nil), nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("email", "a@b.com")
	})
	r.GET("/api/profile", h.GetProfile)
	r.PUT("/api/profile", h.PutProfile)
	r.DELETE("/api/profile", h.DeleteProfile)
	r.GET("/api/profile/basic-info", h.GetBasicInfo)
	r.PUT("/api/profile/basic-info", h.PutBasicInfo)
	r.GET("/api/profile/contact-info", h.GetContactInfo)
	r.PUT("/api/profile/contact-info", h.PutContactInfo)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	parsed := map[string]interface{}{}
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &parsed)
	}
	return w, parsed
}

func sixFilledBasicInfo() models.BasicInfo {
	return models.BasicInfo{
		CompanyName:        "Acme",
		CompanyWebsite:     "https://acme.example",
		CompanyDescription: "Fournisseur industriel",
		YearEstablished:    "1999",
		NumberOfEmployees:  "51-200",
		BusinessType:       "manufacturer",
	}
}

// ================== TESTS ==================

func TestGetProfile_EmptyDefault(t *testing.T) {
	r := setupProfileRouter(newFakeProfileStore())

	w, body := doJSON(t, r, http.MethodGet, "/api/profile", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["completionPercentage"])
	contactInfo := body["contactInfo"].(map[string]interface{})
	assert.Equal(t, "a@b.com", contactInfo["email"])
	basicInfo := body["basicInfo"].(map[string]interface{})
	assert.Equal(t, "", basicInfo["companyName"])
}

func TestPutProfile_MissingSubDocument(t *testing.T) {
	r := setupProfileRouter(newFakeProfileStore())

	w, _ := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{
		"basicInfo": sixFilledBasicInfo(),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPutProfile_ComputesCompletion(t *testing.T) {
	profiles := newFakeProfileStore()
	r := setupProfileRouter(profiles)

	// 6 champs basic remplis, contact vide → round(600/13) = 46
	w, body := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{
		"basicInfo":   sixFilledBasicInfo(),
		"contactInfo": models.ContactInfo{},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(46), body["completionPercentage"])

	stored := profiles.byEmail["a@b.com"]
	require.NotNil(t, stored)
	assert.Equal(t, 46, stored.CompletionPercentage)
	assert.Equal(t, "user-1", stored.UserID)
}

func TestPutProfile_Idempotent(t *testing.T) {
	profiles := newFakeProfileStore()
	r := setupProfileRouter(profiles)

	payload := gin.H{"basicInfo": sixFilledBasicInfo(), "contactInfo": models.ContactInfo{}}

	w1, body1 := doJSON(t, r, http.MethodPut, "/api/profile", payload)
	require.Equal(t, http.StatusOK, w1.Code)
	first := *profiles.byEmail["a@b.com"]

	w2, body2 := doJSON(t, r, http.MethodPut, "/api/profile", payload)
	require.Equal(t, http.StatusOK, w2.Code)
	second := *profiles.byEmail["a@b.com"]

	assert.Equal(t, body1["completionPercentage"], body2["completionPercentage"])
	assert.Equal(t, first.BasicInfo, second.BasicInfo)
	assert.Equal(t, first.ContactInfo, second.ContactInfo)
	assert.Equal(t, first.CompletionPercentage, second.CompletionPercentage)
}

func TestDeleteProfile_Idempotent(t *testing.T) {
	profiles := newFakeProfileStore()
	r := setupProfileRouter(profiles)

	_, _ = doJSON(t, r, http.MethodPut, "/api/profile", gin.H{
		"basicInfo":   sixFilledBasicInfo(),
		"contactInfo": models.ContactInfo{},
	})

	w, _ := doJSON(t, r, http.MethodDelete, "/api/profile", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Deuxième suppression : rien à supprimer, mais pas d'erreur interne
	w, _ = doJSON(t, r, http.MethodDelete, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = doJSON(t, r, http.MethodDelete, "/api/profile", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPutBasicInfo_PreservesContactInfo(t *testing.T) {
	profiles := newFakeProfileStore()
	r := setupProfileRouter(profiles)

	contact := models.ContactInfo{
		AddressLine1: "1 rue de la Paix",
		City:         "Paris",
		State:        "IDF",
		PostalCode:   "75002",
		Country:      "France",
		Phone:        "+33 1 23 45 67 89",
		Email:        "contact@acme.example",
	}
	w, _ := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{
		"basicInfo":   models.BasicInfo{},
		"contactInfo": contact,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Mise à jour partielle du basic-info : le contact-info survit et le
	// pourcentage est recalculé sur l'ensemble (13/13 → 100)
	w, body := doJSON(t, r, http.MethodPut, "/api/profile/basic-info", gin.H{
		"basicInfo": sixFilledBasicInfo(),
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(100), body["completionPercentage"])
	assert.Equal(t, contact, profiles.byEmail["a@b.com"].ContactInfo)
}

func TestPutContactInfo_PreservesBasicInfo(t *testing.T) {
	profiles := newFakeProfileStore()
	r := setupProfileRouter(profiles)

	w, _ := doJSON(t, r, http.MethodPut, "/api/profile", gin.H{
		"basicInfo":   sixFilledBasicInfo(),
		"contactInfo": models.ContactInfo{},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, body := doJSON(t, r, http.MethodPut, "/api/profile/contact-info", gin.H{
		"contactInfo": models.ContactInfo{Email: "contact@acme.example"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	// 6 basic + 1 contact → round(700/13) = 54
	assert.Equal(t, float64(54), body["completionPercentage"])
	assert.Equal(t, sixFilledBasicInfo(), profiles.byEmail["a@b.com"].BasicInfo)
}

func TestGetBasicInfo_NoProfile(t *testing.T) {
	r := setupProfileRouter(newFakeProfileStore())

	w, body := doJSON(t, r, http.MethodGet, "/api/profile/basic-info", nil)
	require.Equal(t, http.StatusOK, w.Code)
	basicInfo := body["basicInfo"].(map[string]interface{})
	assert.Equal(t, "", basicInfo["companyName"])
}
