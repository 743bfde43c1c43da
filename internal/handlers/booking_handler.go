package handlers

import (
	"net/http"

	"cars2customer_backend/internal/models"
	"cars2customer_backend/internal/services"
	"cars2customer_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
}

func NewBookingHandler(base *BaseHandler, bookingService services.BookingService) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) RegisterRoutes(rg *gin.RouterGroup, requireAdmin gin.HandlerFunc) {
	rg.POST("/cars/bookings", h.Create)
	rg.GET("/cars/bookings/:id", requireAdmin, h.Get)

	booked := rg.Group("/carsBooked/bookings", requireAdmin)
	{
		booked.GET("", h.List)
		booked.PUT("/:id", h.UpdateStatus)
		booked.DELETE("/:id", h.Delete)
	}
}

// Create godoc
// @Summary  Request to buy a car
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Param    body  body      dto.CreateBookingRequest  true  "Contact details"
// @Success  201   {object}  models.CarBooking
// @Failure  400   {object}  apperrors.ErrorResponse
// @Router   /cars/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// List godoc
// @Summary   All bookings, newest first
// @Tags      bookings
// @Produce   json
// @Security  BearerAuth
// @Success   200  {array}   models.CarBooking
// @Router    /carsBooked/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingService.List(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Get godoc
// @Summary   Get a booking
// @Tags      bookings
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Booking ID"
// @Success   200  {object}  models.CarBooking
// @Failure   404  {object}  apperrors.ErrorResponse
// @Router    /cars/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.bookingService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateStatus godoc
// @Summary   Change a booking's status
// @Tags      bookings
// @Accept    json
// @Produce   json
// @Security  BearerAuth
// @Param     id    path      string                          true  "Booking ID"
// @Param     body  body      dto.UpdateBookingStatusRequest  true  "New status"
// @Success   200   {object}  models.CarBooking
// @Failure   400   {object}  apperrors.ErrorResponse
// @Failure   404   {object}  apperrors.ErrorResponse
// @Router    /carsBooked/bookings/{id} [put]
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.PathParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookingStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, models.BookingStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// Delete godoc
// @Summary   Delete a booking
// @Tags      bookings
// @Produce   json
// @Security  BearerAuth
// @Param     id   path      string  true  "Booking ID"
// @Success   200  {object}  dto.MessageResponse
// @Failure   404  {object}  apperrors.ErrorResponse
// @Router    /carsBooked/bookings/{id} [delete]
func (h *BookingHandler) Delete(c *gin.Context) {
	id, ok := h.PathParam(c, "id")
	if !ok {
		return
	}

	if err := h.bookingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Booking deleted successfully"})
}
