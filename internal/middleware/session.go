package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionIDKey is the gin context key holding the caller's session id.
const SessionIDKey = "tasting.session_id"

// SessionOptions configures the session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session makes sure every request carries a session id cookie. Unknown or
// malformed ids are replaced with a fresh UUID.
func Session(opts SessionOptions) gin.HandlerFunc {
	name := strings.TrimSpace(opts.CookieName)
	if name == "" {
		name = "tasting_sid"
	}
	maxAge := int(opts.TTL / time.Second)

	return func(c *gin.Context) {
		sid, err := c.Cookie(name)
		if err != nil || !validSessionID(sid) {
			sid = uuid.NewString()
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, sid, maxAge, "/", "", opts.Secure, true)
		c.Set(SessionIDKey, sid)
		c.Next()
	}
}

// SessionID returns the id set by Session, or "" outside of it.
func SessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}

func validSessionID(raw string) bool {
	_, err := uuid.Parse(raw)
	return err == nil
}
