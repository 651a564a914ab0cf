package handler

import (
	"net/http"
	"time"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type WorkerHandler struct {
	svc service.WorkerService
	now func() time.Time
}

func NewWorkerHandler(svc service.WorkerService) *WorkerHandler {
	return &WorkerHandler{svc: svc, now: time.Now}
}

func (h *WorkerHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/schedule/mine", h.Schedule)
	g.GET("/earnings/mine", h.Earnings)
}

// Schedule lists the caller's slots for the week containing ?week=YYYY-MM-DD,
// defaulting to the current week.
func (h *WorkerHandler) Schedule(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	weekOf := h.now()
	if w := c.QueryParam("week"); w != "" {
		weekOf, err = time.Parse("2006-01-02", w)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "week must be YYYY-MM-DD")
		}
	}

	slots, err := h.svc.Schedule(c.Request().Context(), actor, weekOf)
	if err != nil {
		return httpError(err)
	}
	if slots == nil {
		slots = []models.ScheduleSlot{}
	}
	return c.JSON(http.StatusOK, slots)
}

func (h *WorkerHandler) Earnings(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	summary, err := h.svc.Earnings(c.Request().Context(), actor)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToEarningsResponse(summary))
}
