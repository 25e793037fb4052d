package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"vendorhub_back_end/internal/models"
)

// SessionTTL : expiration absolue des sessions, fenêtre fixe de 30 jours
const SessionTTL = 30 * 24 * time.Hour

// Broker transforme un événement d'authentification réussi (identifiants
// ou OAuth) en token de session signé, et résout les tokens présentés par
// les requêtes suivantes. Le secret de signature vit aussi longtemps que le
// processus — la rotation passe par un redéploiement.
type Broker struct {
	secret []byte
	users  UserStore
}

func NewBroker(secret string, users UserStore) *Broker {
	return &Broker{secret: []byte(secret), users: users}
}

// Pipeline de session en trois étapes explicites, chacune une fonction
// pure ou presque : RawAuthEvent → EnrichedToken → SessionView

// RawAuthEvent : ce qu'un flux d'authentification réussi produit
type RawAuthEvent struct {
	UserID   string
	Email    string
	Name     string
	Source   Source
	Occurred time.Time
}

// EnrichedToken : les claims qui partent dans le JWT
type EnrichedToken struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// SessionView : ce que les clients voient de leur session
type SessionView struct {
	User    models.PublicUser `json:"user"`
	Expires time.Time         `json:"expires"`
}

// Enrich calcule les claims à partir de l'événement. Fonction pure.
func Enrich(ev RawAuthEvent) EnrichedToken {
	return EnrichedToken{
		UserID:    ev.UserID,
		Email:     ev.Email,
		IssuedAt:  ev.Occurred,
		ExpiresAt: ev.Occurred.Add(SessionTTL),
	}
}

// Sign signe les claims en JWT HS256
func (b *Broker) Sign(t EnrichedToken) (string, error) {
	claims := jwt.MapClaims{
		"user_id": t.UserID,
		"email":   t.Email,
		"iat":     t.IssuedAt.Unix(),
		"exp":     t.ExpiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(b.secret)
}

// IssueToken compose le pipeline complet émission
func (b *Broker) IssueToken(ev RawAuthEvent) (string, error) {
	return b.Sign(Enrich(ev))
}

// Validate vérifie signature et expiration. Échoue fermé : token malformé,
// expiré ou signé avec une autre clé → pas de session, jamais d'erreur
// remontée à l'appelant.
func (b *Broker) Validate(tokenString string) (EnrichedToken, bool) {
	if tokenString == "" {
		return EnrichedToken{}, false
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return b.secret, nil
	})
	if err != nil || !token.Valid {
		return EnrichedToken{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return EnrichedToken{}, false
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Now().Unix() > int64(exp) {
		return EnrichedToken{}, false
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return EnrichedToken{}, false
	}
	email, _ := claims["email"].(string)
	iat, _ := claims["iat"].(float64)

	return EnrichedToken{
		UserID:    userID,
		Email:     email,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, true
}

// SessionFromToken résout un token en vue de session : le token ne porte
// que l'user_id, l'utilisateur complet est rechargé à la demande
func (b *Broker) SessionFromToken(ctx context.Context, tokenString string) (*SessionView, bool) {
	claims, ok := b.Validate(tokenString)
	if !ok {
		return nil, false
	}

	user, err := b.users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, false
	}

	return &SessionView{User: user.Public(), Expires: claims.ExpiresAt}, true
}

// ResolveRedirect applique la politique de redirection post-connexion :
// les URLs relatives sont résolues contre BASE_URL, les URLs absolues
// passent telles quelles (pas de filtrage open-redirect — voir DESIGN.md)
func ResolveRedirect(baseURL, target string) string {
	if target == "" {
		return baseURL + "/dashboard"
	}
	if strings.HasPrefix(target, "/") {
		return baseURL + target
	}
	return target
}
