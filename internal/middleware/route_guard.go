package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"vendorhub_back_end/internal/auth"
)

// Liste d'autorisation des chemins publics : pages exactes + préfixes.
// Tout le reste exige une session.
var publicExactPaths = map[string]bool{
	"/":       true,
	"/login":  true,
	"/signin": true,
	"/signup": true,
}

var publicPrefixes = []string{
	"/api/auth",
	"/api/register",
	"/static",
}

func isPublicPath(path string) bool {
	if publicExactPaths[path] {
		return true
	}
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	// Fichiers statiques (favicon.ico, *.png, ...)
	return strings.Contains(path, ".")
}

// RouteGuard classe chaque chemin de page en public ou protégé.
// Chemin protégé sans session → redirection vers /signin avec le chemin
// d'origine en callbackUrl. Utilisateur connecté sur /signin, /signup ou
// /login → redirection vers le dashboard. Les routes /api sont gérées par
// AuthRequired (401 JSON, pas de redirection) et passent ici telles quelles.
func RouteGuard(broker *auth.Broker) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		_, loggedIn := broker.Validate(TokenFromRequest(c))

		if !isPublicPath(path) && !loggedIn {
			callbackURL := url.QueryEscape(path + querySuffix(c.Request.URL.RawQuery))
			c.Redirect(http.StatusTemporaryRedirect, "/signin?callbackUrl="+callbackURL)
			c.Abort()
			return
		}

		if loggedIn && (path == "/login" || path == "/signin" || path == "/signup") {
			c.Redirect(http.StatusTemporaryRedirect, "/dashboard")
			c.Abort()
			return
		}

		// Cohérence /login → /signin pour les visiteurs non connectés
		if !loggedIn && path == "/login" {
			redirectURL := "/signin"
			if cb := c.Query("callbackUrl"); cb != "" {
				redirectURL += "?callbackUrl=" + url.QueryEscape(cb)
			}
			c.Redirect(http.StatusTemporaryRedirect, redirectURL)
			c.Abort()
			return
		}

		c.Next()
	}
}

func querySuffix(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	return "?" + rawQuery
}
