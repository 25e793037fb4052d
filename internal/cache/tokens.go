package cache

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ResetTokenTTL    = 1 * time.Hour
	OAuthRedirectTTL = 10 * time.Minute
)

// TokenStore : tokens éphémères en Redis — réinitialisation de mot de
// passe et état de redirection OAuth
type TokenStore struct {
	redis *redis.Client
}

func NewTokenStore(rdb *redis.Client) *TokenStore {
	return &TokenStore{redis: rdb}
}

// NewRandomToken génère un token opaque (état OAuth, lien de reset)
func NewRandomToken() string {
	b := make([]byte, 32)
	rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

// StoreResetToken associe un token de réinitialisation à un user_id,
// valide une heure
func (t *TokenStore) StoreResetToken(ctx context.Context, token, userID string) error {
	return t.redis.Set(ctx, "reset_token:"+token, userID, ResetTokenTTL).Err()
}

// ConsumeResetToken retourne l'user_id associé et supprime le token
// (usage unique)
func (t *TokenStore) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := t.redis.Get(ctx, "reset_token:"+token).Result()
	if err != nil {
		return "", err
	}
	t.redis.Del(ctx, "reset_token:"+token)
	return userID, nil
}

// SaveOAuthRedirect mémorise l'URL de retour demandée avant le départ
// vers le provider
func (t *TokenStore) SaveOAuthRedirect(ctx context.Context, state, redirectURL string) error {
	return t.redis.Set(ctx, "oauth_redirect:"+state, redirectURL, OAuthRedirectTTL).Err()
}

// TakeOAuthRedirect récupère et supprime l'URL de retour
func (t *TokenStore) TakeOAuthRedirect(ctx context.Context, state string) string {
	redirectURL, err := t.redis.Get(ctx, "oauth_redirect:"+state).Result()
	if err != nil {
		return ""
	}
	t.redis.Del(ctx, "oauth_redirect:"+state)
	return redirectURL
}
