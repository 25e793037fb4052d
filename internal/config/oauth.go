package config

import (
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// GoogleOAuthConfig construit la configuration OAuth2 Google utilisée pour
// l'échange manuel code → token dans le callback
func (c *Config) GoogleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  c.BaseURL + "/api/auth/google/callback",
		ClientID:     c.GoogleClientID,
		ClientSecret: c.GoogleClientSecret,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}
