package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"appointment-booking-api/internal/service"
)

type createAppointmentBody struct {
	ProviderID string    `json:"provider_id" binding:"required"`
	Date       time.Time `json:"date"`
}

// CreateAppointment books for the authenticated user.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var b createAppointmentBody
	if !bind(c, &b) {
		return
	}
	apt, err := h.svc.CreateAppointment(c.Request.Context(), service.CreateAppointmentInput{
		ProviderID: b.ProviderID,
		UserID:     uid(c.Request.Context()),
		Date:       b.Date,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apt)
}

func (h *Handler) ListProviderAppointments(c *gin.Context) {
	day, ok := queryInt(c, "day")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	apts, err := h.svc.ListProviderAppointments(c.Request.Context(), uid(c.Request.Context()), day, time.Month(month), year)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, apts)
}

func (h *Handler) ListProviders(c *gin.Context) {
	users, err := h.svc.ListProviders(c.Request.Context(), uid(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	out := make([]userView, len(users))
	for i := range users {
		out[i] = h.toView(&users[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) MonthAvailability(c *gin.Context) {
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	days, err := h.svc.ListProviderMonthAvailability(c.Request.Context(), c.Param("id"), time.Month(month), year)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, days)
}

func (h *Handler) DayAvailability(c *gin.Context) {
	day, ok := queryInt(c, "day")
	if !ok {
		return
	}
	month, ok := queryInt(c, "month")
	if !ok {
		return
	}
	year, ok := queryInt(c, "year")
	if !ok {
		return
	}
	hours, err := h.svc.ListProviderDayAvailability(c.Request.Context(), c.Param("id"), day, time.Month(month), year)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, hours)
}

func (h *Handler) ListNotifications(c *gin.Context) {
	ns, err := h.svc.ListNotifications(c.Request.Context(), uid(c.Request.Context()))
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ns)
}
