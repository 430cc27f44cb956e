package handler

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/service"
)

func (h *Handler) ShowProfile(c *gin.Context) {
	u, err := h.svc.ShowProfile(c.Request.Context(), uid(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.toView(u))
}

type updateProfileBody struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	OldPassword          string `json:"old_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var b updateProfileBody
	if !bind(c, &b) {
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), service.UpdateProfileInput{
		UserID:               uid(c.Request.Context()),
		Name:                 b.Name,
		Email:                b.Email,
		OldPassword:          b.OldPassword,
		Password:             b.Password,
		PasswordConfirmation: b.PasswordConfirmation,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.toView(u))
}

// UpdateAvatar stores the multipart "avatar" file in the tmp folder under a random prefix
// and hands its name to the avatar service.
func (h *Handler) UpdateAvatar(c *gin.Context) {
	file, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperr.New("avatar file is required"))
		return
	}

	prefix := make([]byte, 10)
	if _, err := rand.Read(prefix); err != nil {
		c.Error(err)
		return
	}
	name := hex.EncodeToString(prefix) + "-" + filepath.Base(file.Filename)
	tmp := filepath.Join(h.tmpDir, name)
	if err := c.SaveUploadedFile(file, tmp); err != nil {
		c.Error(err)
		return
	}

	u, err := h.svc.UpdateUserAvatar(c.Request.Context(), service.UpdateAvatarInput{
		UserID:         uid(c.Request.Context()),
		AvatarFilename: name,
	})
	if err != nil {
		// the upload may already have been moved out of tmp
		if rerr := os.Remove(tmp); rerr != nil && !errors.Is(rerr, fs.ErrNotExist) {
			log.WithError(rerr).Warnf("remove upload %s", tmp)
		}
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, h.toView(u))
}
