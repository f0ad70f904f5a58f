package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wedding-guestlist/internal/models"
	"wedding-guestlist/internal/storage"
	"wedding-guestlist/internal/summary"
)

// Error messages returned in the "error" field of failed responses.
const (
	msgMissingFields   = "Missing required fields"
	msgInvalidFormat   = "Invalid data format"
	msgGuestNotFound   = "Guest not found"
	msgInternalFailure = "Internal server error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type GuestHandler struct {
	registry storage.Registry
	log      zerolog.Logger
}

// NewGuestHandler creates the HTTP handlers for the guest registry
func NewGuestHandler(registry storage.Registry, log zerolog.Logger) *GuestHandler {
	return &GuestHandler{
		registry: registry,
		log:      log,
	}
}

// GET /api/guests
func (h *GuestHandler) ListGuests(c *gin.Context) {
	guests, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "list guests", err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// POST /api/guests
func (h *GuestHandler) AddGuest(c *gin.Context) {
	var in models.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidFormat})
		return
	}

	guest, err := h.registry.Add(c.Request.Context(), in)
	if err != nil {
		h.mutationError(c, msgMissingFields, "add guest", err)
		return
	}

	h.log.Debug().Str("guest_id", guest.ID).Str("association", string(guest.Association)).Msg("guest added")
	c.JSON(http.StatusCreated, guest)
}

// PUT /api/guests/:id
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id := c.Param("id")

	var in models.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: msgInvalidFormat})
		return
	}

	guest, err := h.registry.Update(c.Request.Context(), id, in)
	if err != nil {
		h.mutationError(c, msgInvalidFormat, "update guest", err)
		return
	}

	h.log.Debug().Str("guest_id", guest.ID).Msg("guest updated")
	c.JSON(http.StatusOK, guest)
}

// DELETE /api/guests/:id
func (h *GuestHandler) RemoveGuest(c *gin.Context) {
	id := c.Param("id")

	guests, err := h.registry.Remove(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, "remove guest", err)
		return
	}

	h.log.Debug().Str("guest_id", id).Int("remaining", len(guests)).Msg("guest removed")
	c.JSON(http.StatusOK, guests)
}

// GET /api/guests/summary
func (h *GuestHandler) GetSummary(c *gin.Context) {
	guests, err := h.registry.List(c.Request.Context())
	if err != nil {
		h.internalError(c, "summarize guests", err)
		return
	}
	c.JSON(http.StatusOK, summary.Summarize(guests))
}

func (h *GuestHandler) mutationError(c *gin.Context, validationMsg, op string, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.Is(err, storage.ErrGuestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: msgGuestNotFound})
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationMsg, Field: vErr.Field})
	default:
		h.internalError(c, op, err)
	}
}

func (h *GuestHandler) internalError(c *gin.Context, op string, err error) {
	h.log.Error().Err(err).Str("op", op).Msg("registry operation failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgInternalFailure})
}
