package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/jobs"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

// ListJobs godoc
// @Summary List active upstream jobs
// @Description Passes through every active job record from the upstream platform.
// @Tags jobs
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "{success: true, jobs: [...]}"
// @Failure 401 {object} models.APIError "Missing token (UNAUTHORIZED)"
// @Failure 403 {object} models.APIError "Invalid token (FORBIDDEN)"
// @Failure 500 {object} models.APIError "Upstream failure (UPSTREAM_UNREACHABLE)"
// @Router /jobs [get]
func (h *Handler) ListJobs(c *gin.Context) {
	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	raws, err := h.fetcher.FetchAll(ctx, upstream.ActiveJobs(), http.MethodGet, nil)
	if err != nil {
		log.Printf("[Jobs] Failed to fetch active jobs: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeUpstreamUnreachable, "Failed to fetch jobs from upstream platform", nil)
		return
	}
	if raws == nil {
		raws = []models.RawRecord{}
	}
	RespondWithSuccess(c, http.StatusOK, gin.H{"jobs": raws})
}

// ListBookings godoc
// @Summary List the caller's bookings
// @Description Resolves the caller's email to upstream job contacts and returns the matching active jobs as bookings. When the upstream is unreachable, placeholder data flagged "mock" is returned instead of an error; an upstream timeout is still reported as 504.
// @Tags bookings
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "{success: true, bookings: [...], mock?: true, error?: string}"
// @Failure 404 {object} models.APIError "Caller account not found (USER_NOT_FOUND)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Failure 504 {object} models.APIError "Upstream timeout (REQUEST_TIMEOUT)"
// @Router /bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	identity, _ := auth.IdentityFrom(c)
	customer, err := h.users.GetByID(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			RespondWithError(c, http.StatusNotFound, models.ErrorCodeUserNotFound, "User not found", nil)
			return
		}
		log.Printf("[Bookings] Failed to load customer %d: %v", identity.ID, err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}

	email := customer.Profile().Email
	if email == "" {
		RespondWithSuccess(c, http.StatusOK, gin.H{"bookings": []models.Booking{}, "error": "Customer email not configured"})
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	bookings, err := h.bookings.ForEmail(ctx, email)
	var resolveErr *upstream.ResolveError
	switch {
	case errors.As(err, &resolveErr):
		h.degradeOrFail(c, RouteBookings, err, PlaceholderBookings(h.now()))
		return
	case err != nil:
		h.degradeOrFail(c, RouteBookings, err, []models.Booking{})
		return
	}
	log.Printf("[Bookings] Returning %d bookings for customer %d", len(bookings), identity.ID)
	RespondWithSuccess(c, http.StatusOK, gin.H{"bookings": bookings})
}

// degradeOrFail answers an upstream failure according to the route's strategy.
// A request that ran out of time or was cancelled is never degraded.
func (h *Handler) degradeOrFail(c *gin.Context, route string, err error, placeholder []models.Booking) {
	if h.strategy(route) == DegradeToPlaceholder && errors.Is(err, models.ErrUpstreamUnreachable) && !cancelled(err) {
		log.Printf("[Bookings] Upstream unavailable, serving placeholder data: %v", err)
		RespondWithSuccess(c, http.StatusOK, gin.H{"bookings": placeholder, "mock": true})
		return
	}
	respondUpstreamError(c, err, models.ErrorCodeBookingNotFound, "Booking not found")
}

func cancelled(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// GetBooking godoc
// @Summary Get booking details
// @Description Fetches one upstream job by uuid and returns it with billing details.
// @Tags bookings
// @Produce  json
// @Security BearerAuth
// @Param   id   path   string  true  "Booking (job) UUID"
// @Success 200 {object} map[string]interface{} "{success: true, booking: BookingDetail}"
// @Failure 400 {object} models.APIError "Malformed id (INVALID_ID_FORMAT)"
// @Failure 404 {object} models.APIError "No such job (BOOKING_NOT_FOUND)"
// @Failure 502 {object} models.APIError "Upstream failure (UPSTREAM_UNREACHABLE, NORMALIZATION_ERROR)"
// @Router /bookings/{id} [get]
func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	raw, err := h.fetchJob(ctx, id)
	if err != nil {
		respondUpstreamError(c, err, models.ErrorCodeBookingNotFound, "Booking not found")
		return
	}

	detail, err := jobs.NormalizeDetail(raw)
	if err != nil {
		respondUpstreamError(c, err, models.ErrorCodeBookingNotFound, "Booking not found")
		return
	}
	RespondWithSuccess(c, http.StatusOK, gin.H{"booking": detail})
}

// GetDocument godoc
// @Summary Get a quote or invoice for a booking
// @Description Composes a quote or invoice from the upstream job. Subtotal and GST are derived from the tax-inclusive total.
// @Tags bookings
// @Produce  json
// @Security BearerAuth
// @Param   id     path   string  true  "Booking (job) UUID"
// @Param   type   path   string  true  "Document type" Enums(quote, invoice)
// @Success 200 {object} map[string]interface{} "{success: true, document: Document}"
// @Failure 400 {object} models.APIError "Invalid document type (VALIDATION_ERROR) or id (INVALID_ID_FORMAT)"
// @Failure 404 {object} models.APIError "No such job (BOOKING_NOT_FOUND)"
// @Failure 502 {object} models.APIError "Upstream failure (UPSTREAM_UNREACHABLE, NORMALIZATION_ERROR)"
// @Router /bookings/{id}/documents/{type} [get]
func (h *Handler) GetDocument(c *gin.Context) {
	kind, ok := models.ParseDocumentKind(c.Param("type"))
	if !ok {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, `Invalid document type. Use "quote" or "invoice"`, gin.H{"type": c.Param("type")})
		return
	}
	id, ok := bookingID(c)
	if !ok {
		return
	}

	ctx, cancel := h.upstreamContext(c)
	defer cancel()

	raw, err := h.fetchJob(ctx, id)
	if err != nil {
		respondUpstreamError(c, err, models.ErrorCodeBookingNotFound, "Job not found")
		return
	}

	identity, _ := auth.IdentityFrom(c)
	profile, err := h.users.Profile(c.Request.Context(), identity.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("[Documents] Failed to load profile for customer %d: %v", identity.ID, err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}

	doc, err := h.composer.Compose(kind, raw, profile)
	if err != nil {
		respondUpstreamError(c, err, models.ErrorCodeBookingNotFound, "Job not found")
		return
	}
	log.Printf("[Documents] Returning %s %s", kind, doc.DocumentNumber)
	RespondWithSuccess(c, http.StatusOK, gin.H{"document": doc})
}

// fetchJob loads the single job with the given uuid. Zero results yield
// models.ErrNotFound.
func (h *Handler) fetchJob(ctx context.Context, id string) (models.RawRecord, error) {
	raws, err := h.fetcher.FetchAll(ctx, upstream.JobByUUID(id), http.MethodGet, nil)
	if err != nil {
		return nil, err
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("job %s: %w", id, models.ErrNotFound)
	}
	return raws[0], nil
}

// bookingID validates the :id path parameter, responding 400 when it is not a uuid.
func bookingID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidIDFormat, "Booking id must be a UUID.", gin.H{"id": id})
		return "", false
	}
	return id, true
}

// PlaceholderBookings is served when the upstream cannot be reached so the
// client can still render its booking list.
func PlaceholderBookings(now time.Time) []models.Booking {
	return []models.Booking{{
		UUID:           "placeholder-booking-1",
		JobNumber:      "RW-2024-001",
		Name:           "Roadworthy Inspection - Toyota Camry",
		Status:         "Scheduled",
		ScheduledStart: now.Add(48 * time.Hour).UTC().Format(time.RFC3339),
		Vehicle: &models.Vehicle{
			Make:  "Toyota",
			Model: "Camry",
			Year:  "2020",
			Rego:  "ABC123",
			VIN:   "JT1234567890",
		},
	}}
}
