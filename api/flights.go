package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	msgFlightNotFound = "Flight not found"
	msgCreateFailed   = "Failed to create flight"
	msgInternal       = "Internal server error"
	msgInvalidBody    = "Invalid request body"
)

type FlightHandler struct {
	service flights.FlightUseCase
	log     logrus.FieldLogger
}

type messageResponse struct {
	Message string `json:"message"`
}

func NewFlightHandler(service flights.FlightUseCase, log logrus.FieldLogger) *FlightHandler {
	return &FlightHandler{service: service, log: log}
}

func (h *FlightHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/:id", h.get)
	router.POST("", h.create)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		h.fail(c, "list flights", err, msgInternal)
		return
	}
	if list == nil {
		list = []domain.Flight{}
	}
	c.JSON(http.StatusOK, list)
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get flight", err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	flight, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, "create flight", err, msgCreateFailed)
		return
	}
	c.JSON(http.StatusCreated, flight)
}

func (h *FlightHandler) update(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	flight, err := h.service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		h.fail(c, "update flight", err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) delete(c *gin.Context) {
	flight, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "delete flight", err, msgInternal)
		return
	}
	c.JSON(http.StatusOK, flight)
}

func (h *FlightHandler) bindInput(c *gin.Context) (domain.FlightInput, bool) {
	var input domain.FlightInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, messageResponse{Message: msgInvalidBody})
		return input, false
	}
	return input, true
}

// fail maps a service error to a response. Only validation reasons reach the
// client; everything unexpected is logged and answered with fallback.
func (h *FlightHandler) fail(c *gin.Context, op string, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrFlightNotFound):
		c.JSON(http.StatusNotFound, messageResponse{Message: msgFlightNotFound})
	case errors.Is(err, domain.ErrInvalidFlight):
		c.JSON(http.StatusBadRequest, messageResponse{Message: err.Error()})
	default:
		h.log.WithError(err).WithField("op", op).Error("flight request failed")
		c.JSON(http.StatusInternalServerError, messageResponse{Message: fallback})
	}
}
