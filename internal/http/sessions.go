package httpapi

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopadmin/internal/auth"
)

const msgBadCredentials = "Invalid email or password."

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// @Summary Sign-in page
// @Tags auth
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /login [get]
func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, viewLogin, gin.H{"error": "", "email": ""})
}

// @Summary Sign in
// @Description Sets the admin_token session cookie.
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param email formData string true "Email"
// @Param password formData string true "Password"
// @Success 302 "Redirect to /admindashboard"
// @Failure 401 {string} string
// @Router /login [post]
func (s *Server) login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusUnauthorized, viewLogin, gin.H{"error": msgBadCredentials, "email": form.Email})
		return
	}
	token, u, err := s.sessions.Login(c.Request.Context(), strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			log.Printf("[auth.login] %v", err)
			c.String(http.StatusInternalServerError, "An error occurred while signing in.")
			return
		}
		c.HTML(http.StatusUnauthorized, viewLogin, gin.H{"error": msgBadCredentials, "email": form.Email})
		return
	}
	log.Printf("[auth.login] user=%s role=%s", u.ID, u.Role)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(s.sessions.Tokens().TTL().Seconds()), "/", "", s.opts.SecureCookies, true)
	c.Redirect(http.StatusFound, "/admindashboard")
}

// @Summary Sign out
// @Tags auth
// @Success 302 "Redirect to /login"
// @Router /logout [post]
func (s *Server) logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", s.opts.SecureCookies, true)
	c.Redirect(http.StatusFound, "/login")
}
