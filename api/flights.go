package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/flightreservation/internal/domain"
	"github.com/Domenick1991/flightreservation/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type FlightHandler struct {
	service booking.FlightUseCase
	loc     *time.Location
}

type createFlightRequest struct {
	FlightNumber   string `json:"flight_number"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departure_time"`
	AvailableSeats int    `json:"available_seats"`
}

// NewFlightHandler reads dates without a zone in loc.
func NewFlightHandler(service booking.FlightUseCase, loc *time.Location) *FlightHandler {
	if loc == nil {
		loc = time.Local
	}
	return &FlightHandler{service: service, loc: loc}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/search", h.search)
	router.GET("/:number", h.get)
	router.POST("/", h.create)
}

func (h *FlightHandler) list(c *gin.Context) {
	flights, err := h.service.ListFlights(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flights)
}

func (h *FlightHandler) search(c *gin.Context) {
	date, err := time.ParseInLocation(dateLayout, c.Query("date"), h.loc)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be yyyy-mm-dd"})
		return
	}

	found, err := h.service.SearchFlights(c.Request.Context(), c.Query("destination"), date)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSnapshots(found))
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetFlight(c.Request.Context(), c.Param("number"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, flight.Snapshot())
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	departure, err := h.parseDeparture(req.DepartureTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "departure_time must be yyyy-mm-dd hh:mm or RFC3339"})
		return
	}

	flight, err := h.service.AddFlight(c.Request.Context(), booking.AddFlightInput{
		FlightNumber:   req.FlightNumber,
		Destination:    req.Destination,
		DepartureTime:  departure,
		AvailableSeats: req.AvailableSeats,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, flight.Snapshot())
}

func (h *FlightHandler) parseDeparture(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(domain.DateTimeLayout, s, h.loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func toSnapshots(flights []*domain.Flight) []domain.FlightSnapshot {
	out := make([]domain.FlightSnapshot, 0, len(flights))
	for _, f := range flights {
		out = append(out, f.Snapshot())
	}
	return out
}
