package session

import (
	"net/http" // SameSite constants
	"time"     // Cookie lifetime

	"github.com/gin-gonic/gin" // Gin web framework
)

// CookieName is the name of the session cookie
const CookieName = "session"

// CookieConfig controls the session cookie flags
type CookieConfig struct {
	Secure bool          // HTTPS-only cookie
	TTL    time.Duration // Cookie lifetime, matches the server-side session TTL
}

// SetCookie attaches the session cookie to the response. The cookie is
// HTTP-only and SameSite=Lax; Secure follows the config.
func SetCookie(c *gin.Context, token string, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)
}

// ClearCookie expires the session cookie on the client
func ClearCookie(c *gin.Context, cfg CookieConfig) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", cfg.Secure, true)
}
