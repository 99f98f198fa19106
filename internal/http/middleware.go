package httpapi

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/auth"
)

const sessionCookie = "admin_token"

// session resolves the caller from the session cookie or a bearer token and
// attaches it to the request context. It never rejects a request; the
// services decide what an anonymous caller may do.
func (s *Server) session() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.sessions == nil {
			c.Next()
			return
		}
		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}
		u, err := s.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			log.Printf("[auth.session] rejected token: %v", err)
			c.Next()
			return
		}
		c.Request = c.Request.WithContext(auth.WithUser(c.Request.Context(), u))
		c.Next()
	}
}

// sessionToken reads the cookie first, then an Authorization bearer header.
func sessionToken(c *gin.Context) string {
	if token, err := c.Cookie(sessionCookie); err == nil && token != "" {
		return token
	}
	token, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}
