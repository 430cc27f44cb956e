package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/service"
)

type createUserBody struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var b createUserBody
	if !bind(c, &b) {
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), service.CreateUserInput{
		Name: b.Name, Email: b.Email, Password: b.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, h.toView(u))
}

type sessionBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) CreateSession(c *gin.Context) {
	var b sessionBody
	if !bind(c, &b) {
		return
	}
	sess, err := h.svc.AuthenticateUser(c.Request.Context(), b.Email, b.Password)
	if err != nil {
		c.Error(err)
		return
	}
	h.writeSession(c, sess)
}

// RefreshSession accepts the refresh token from the body or the refresh_token cookie.
func (h *Handler) RefreshSession(c *gin.Context) {
	var b refreshBody
	if c.Request.ContentLength > 0 && !bind(c, &b) {
		return
	}
	raw := b.RefreshToken
	if raw == "" {
		raw, _ = c.Cookie("refresh_token")
	}
	sess, err := h.svc.RefreshSession(c.Request.Context(), raw)
	if err != nil {
		c.Error(err)
		return
	}
	h.writeSession(c, sess)
}

func (h *Handler) writeSession(c *gin.Context, sess *service.Session) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refresh_token",
		Value:    sess.RefreshToken,
		Path:     "/sessions/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(auth.RefreshTTL),
	})
	c.JSON(http.StatusOK, gin.H{
		"user":          h.toView(sess.User),
		"token":         sess.Token,
		"refresh_token": sess.RefreshToken,
	})
}
