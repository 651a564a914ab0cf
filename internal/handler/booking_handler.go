package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/Eursukkul/helper-marketplace/internal/dto"
	"github.com/Eursukkul/helper-marketplace/internal/models"
	"github.com/Eursukkul/helper-marketplace/internal/service"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// RegisterRoutes mounts the booking routes on an authenticated group.
func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	bookings := g.Group("/bookings")
	bookings.POST("", h.CreateBooking)
	bookings.GET("/mine", h.ListMine)
	bookings.GET("/available", h.ListAvailable)
	bookings.GET("/:id", h.GetBooking)
	bookings.POST("/:id/accept", h.Accept)
	bookings.POST("/:id/counter-offer", h.CounterOffer)
	bookings.POST("/:id/accept-counter", h.AcceptCounter)
	bookings.POST("/:id/start", h.Start)
	bookings.POST("/:id/complete", h.Complete)
	bookings.POST("/:id/confirm-payment", h.ConfirmPayment)
	bookings.POST("/:id/cancel", h.Cancel)
	bookings.GET("/:id/payments", h.ListPayments)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req dto.CreateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.CreateBooking(c.Request().Context(), actor, service.CreateBookingInput{
		CatalogItemID:     req.CatalogItemID,
		CustomTitle:       req.CustomTitle,
		CustomDescription: req.CustomDescription,
		Location:          req.Location,
		OfferedPriceCents: req.OfferedPriceCents,
		ScheduledAt:       req.ScheduledAt,
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	return h.single(c, h.svc.GetBooking)
}

func (h *BookingHandler) Accept(c echo.Context) error {
	return h.single(c, h.svc.Accept)
}

func (h *BookingHandler) AcceptCounter(c echo.Context) error {
	return h.single(c, h.svc.AcceptCounter)
}

func (h *BookingHandler) Start(c echo.Context) error {
	return h.single(c, h.svc.Start)
}

func (h *BookingHandler) Cancel(c echo.Context) error {
	return h.single(c, h.svc.Cancel)
}

func (h *BookingHandler) CounterOffer(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	var req dto.CounterOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	booking, err := h.svc.CounterOffer(c.Request().Context(), actor, id, req.CounterOfferCents)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) Complete(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	res, err := h.svc.Complete(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToCompletionResponse(res))
}

func (h *BookingHandler) ConfirmPayment(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	var req dto.ConfirmPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.svc.ConfirmPayment(c.Request().Context(), actor, id, service.ConfirmPaymentInput{
		TransactionID: req.PaymentID,
		AmountCents:   req.AmountCents,
		Provider:      req.Provider,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPaymentResponse(res))
}

func (h *BookingHandler) ListMine(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListMine(c.Request().Context(), actor)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListAvailable(c echo.Context) error {
	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	bookings, err := h.svc.ListAvailable(c.Request().Context(), actor)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponses(bookings))
}

func (h *BookingHandler) ListPayments(c echo.Context) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	payments, err := h.svc.ListPayments(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return c.JSON(http.StatusOK, payments)
}

type bookingOp func(ctx context.Context, actor models.Actor, bookingID uint) (*models.Booking, error)

// single runs an operation that takes only the booking id and returns the booking.
func (h *BookingHandler) single(c echo.Context, op bookingOp) error {
	actor, id, err := actorAndID(c)
	if err != nil {
		return err
	}

	booking, err := op(c.Request().Context(), actor, id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func actorAndID(c echo.Context) (models.Actor, uint, error) {
	actor, err := actorOf(c)
	if err != nil {
		return models.Actor{}, 0, err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return models.Actor{}, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}
	return actor, uint(id), nil
}
