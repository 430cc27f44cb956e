package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-booking-api/internal/apperr"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/service"
)

type Handler struct {
	svc       *service.Service
	secret    string
	tmpDir    string
	uploadDir string
	apiURL    string
}

type Options struct {
	Secret    string
	TmpDir    string
	UploadDir string
	// APIURL prefixes avatar links, e.g. http://localhost:3333
	APIURL string
}

func New(svc *service.Service, opts Options) *Handler {
	return &Handler{
		svc:       svc,
		secret:    opts.Secret,
		tmpDir:    opts.TmpDir,
		uploadDir: opts.UploadDir,
		apiURL:    opts.APIURL,
	}
}

// Register mounts every route on r. rl guards the session endpoints.
func (h *Handler) Register(r *gin.Engine, rl *middleware.RateLimiter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.Static("/files", h.uploadDir)

	r.POST("/users", h.CreateUser)
	r.POST("/sessions", middleware.Limit(rl), h.CreateSession)
	r.POST("/sessions/refresh", middleware.Limit(rl), h.RefreshSession)

	authed := r.Group("/", middleware.RequireAuth(h.secret))
	authed.PATCH("/users/avatar", h.UpdateAvatar)
	authed.GET("/profile", h.ShowProfile)
	authed.PUT("/profile", h.UpdateProfile)
	authed.POST("/appointments", h.CreateAppointment)
	authed.GET("/appointments/me", h.ListProviderAppointments)
	authed.GET("/providers", h.ListProviders)
	authed.GET("/providers/:id/month-availability", h.MonthAvailability)
	authed.GET("/providers/:id/day-availability", h.DayAvailability)
	authed.GET("/notifications", h.ListNotifications)
}

func uid(ctx context.Context) string {
	return middleware.UserID(ctx)
}

type userView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (h *Handler) toView(u *model.User) userView {
	v := userView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Avatar != "" {
		url := h.apiURL + "/files/" + u.Avatar
		v.AvatarURL = &url
	}
	return v
}

// bind decodes the JSON body, reporting malformed input as a 400.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.Error(apperr.New("Validation failed: " + err.Error()))
		return false
	}
	return true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		c.Error(apperr.New(name + " must be a number"))
		return 0, false
	}
	return n, true
}
