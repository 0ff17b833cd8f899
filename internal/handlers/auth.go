package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"erp-console/internal/access"
	"erp-console/internal/middleware"
	"erp-console/internal/models"
	"erp-console/internal/session"
)

func (h *Handler) ShowLogin(c *gin.Context) {
	if _, ok := middleware.CurrentSession(c); ok {
		c.Redirect(http.StatusFound, access.LandingPath)
		return
	}
	h.render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Invalid form data."})
		return
	}
	form.Email = strings.TrimSpace(form.Email)
	if form.Email == "" || form.Password == "" {
		h.render(c, http.StatusBadRequest, "login.html", gin.H{
			"error": "Email and password are required.",
			"email": form.Email,
		})
		return
	}

	store := middleware.Store(c)
	sess, err := store.Login(c.Request.Context(), models.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		status := http.StatusUnauthorized
		msg := "Sign-in failed. Try again later."
		var ae *session.AuthError
		if errors.As(err, &ae) {
			msg = ae.Message()
			if ae.Kind != session.InvalidCredentials {
				status = http.StatusBadGateway
			}
		}
		h.render(c, status, "login.html", gin.H{"error": msg, "email": form.Email})
		return
	}

	h.audit(c, "session", sess.ID, "login", "signed in as "+string(sess.Role))
	c.Redirect(http.StatusSeeOther, access.LandingPath)
}

func (h *Handler) Logout(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		h.audit(c, "session", sess.ID, "logout", "")
	}
	if store := middleware.Store(c); store != nil {
		store.Logout(c.Request.Context())
	}
	c.Redirect(http.StatusSeeOther, access.LoginPath)
}
