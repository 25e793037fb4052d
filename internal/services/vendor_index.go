package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"vendorhub_back_end/internal/models"
)

const vendorIndexName = "vendors"

// VendorIndex : annuaire vendeurs dans Elasticsearch, alimenté par les
// écritures de profil. L'indexation est best-effort — une panne Elastic
// ne fait jamais échouer l'écriture du profil.
type VendorIndex struct {
	client *elasticsearch.Client
}

func NewVendorIndex(client *elasticsearch.Client) *VendorIndex {
	return &VendorIndex{client: client}
}

// Enabled indique si la recherche vendeurs est disponible
func (v *VendorIndex) Enabled() bool {
	return v != nil && v.client != nil
}

type vendorDocument struct {
	Email              string `json:"email"`
	CompanyName        string `json:"companyName"`
	CompanyDescription string `json:"companyDescription"`
	BusinessType       string `json:"businessType"`
	City               string `json:"city"`
	Country            string `json:"country"`
}

// IndexProfile indexe un profil vendeur (appelé après chaque upsert)
func (v *VendorIndex) IndexProfile(p models.Profile) {
	if !v.Enabled() {
		return
	}

	doc := vendorDocument{
		Email:              p.Email,
		CompanyName:        p.BasicInfo.CompanyName,
		CompanyDescription: p.BasicInfo.CompanyDescription,
		BusinessType:       p.BasicInfo.BusinessType,
		City:               p.ContactInfo.City,
		Country:            p.ContactInfo.Country,
	}

	data, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      vendorIndexName,
		DocumentID: p.Email,
		Body:       bytes.NewReader(data),
		Refresh:    "true",
	}

	res, err := req.Do(context.Background(), v.client)
	if err != nil {
		log.Println("❌ Erreur envoi Elastic:", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("⚠️ Elastic a renvoyé une erreur pour %s: %s", p.Email, res.String())
	}
}

// RemoveProfile retire un vendeur de l'annuaire (après suppression du profil)
func (v *VendorIndex) RemoveProfile(email string) {
	if !v.Enabled() {
		return
	}

	req := esapi.DeleteRequest{Index: vendorIndexName, DocumentID: email}
	res, err := req.Do(context.Background(), v.client)
	if err != nil {
		log.Println("❌ Erreur suppression Elastic:", err)
		return
	}
	res.Body.Close()
}

// Search recherche des vendeurs par nom, description, type d'activité ou
// localisation
func (v *VendorIndex) Search(ctx context.Context, query string) ([]map[string]interface{}, error) {
	if !v.Enabled() {
		return nil, errors.New("client Elasticsearch non initialisé")
	}

	var buf bytes.Buffer
	q := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"companyName^2", "companyDescription", "businessType", "city", "country"},
			},
		},
	}
	if err := json.NewEncoder(&buf).Encode(q); err != nil {
		return nil, err
	}

	res, err := v.client.Search(
		v.client.Search.WithContext(ctx),
		v.client.Search.WithIndex(vendorIndexName),
		v.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.New("erreur Elasticsearch: " + res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		results = append(results, hit.Source)
	}
	return results, nil
}
