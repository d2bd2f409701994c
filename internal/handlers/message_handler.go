package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/notify"
)

// ListMessages godoc
// @Summary List a booking's messages
// @Tags messages
// @Produce  json
// @Security BearerAuth
// @Param   id   path   string  true  "Booking ID"
// @Success 200 {object} map[string]interface{} "{success: true, messages: [...]}"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /bookings/{id}/messages [get]
func (h *Handler) ListMessages(c *gin.Context) {
	bookingID := c.Param("id")
	messages, err := h.messages.List(c.Request.Context(), bookingID)
	if err != nil {
		log.Printf("[Messages] Failed to list messages for booking %s: %v", bookingID, err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}
	RespondWithSuccess(c, http.StatusOK, gin.H{"messages": messages})
}

// CreateMessage godoc
// @Summary Post a message on a booking
// @Description Appends a message to the booking's conversation. userId defaults to the caller.
// @Tags messages
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id       path   string                        true  "Booking ID"
// @Param   message  body   models.CreateMessageRequest   true  "Message to post"
// @Success 201 {object} map[string]interface{} "{success: true, message: Message}"
// @Failure 400 {object} models.APIError "Empty message (VALIDATION_ERROR) or bad JSON (INVALID_JSON)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /bookings/{id}/messages [post]
func (h *Handler) CreateMessage(c *gin.Context) {
	var req models.CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidJSON, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Message is required", nil)
		return
	}

	userID := req.UserID
	if userID == "" {
		identity, _ := auth.IdentityFrom(c)
		userID = strconv.FormatUint(uint64(identity.ID), 10)
	}

	bookingID := c.Param("id")
	msg, err := h.messages.Create(c.Request.Context(), bookingID, userID, req.Message)
	if err != nil {
		if errors.Is(err, models.ErrValidation) {
			RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Message is required", nil)
			return
		}
		log.Printf("[Messages] Failed to save message for booking %s: %v", bookingID, err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}

	if err := h.publisher.PublishMessageCreated(c.Request.Context(), notify.NewMessageCreatedEvent(msg)); err != nil {
		log.Printf("[Messages] Failed to publish event for message %s: %v", msg.UUID, err)
	}
	RespondWithSuccess(c, http.StatusCreated, gin.H{"message": msg})
}
