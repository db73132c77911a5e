package api

import (
	"net/http"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createReservationRequest struct {
	CustomerName string `json:"customer_name"`
	FlightNumber string `json:"flight_number"`
	Seats        int    `json:"seats"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/", h.findByCustomer)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reservation, err := h.service.BookFlightByNumber(c.Request.Context(), booking.BookFlightInput{
		CustomerName: req.CustomerName,
		FlightNumber: req.FlightNumber,
		Seats:        req.Seats,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation.Snapshot())
}

func (h *BookingHandler) findByCustomer(c *gin.Context) {
	reservations, err := h.service.FindReservations(c.Request.Context(), c.Query("customer"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]domain.ReservationSnapshot, 0, len(reservations))
	for _, r := range reservations {
		out = append(out, r.Snapshot())
	}
	c.JSON(http.StatusOK, out)
}
