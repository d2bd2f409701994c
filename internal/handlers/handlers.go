// Package handlers exposes the customer portal over HTTP.
//
// Each upstream-backed route declares how it reacts to upstream failure: it
// either degrades to placeholder data or propagates the failure as an error
// response. See DefaultStrategies.
package handlers

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/documents"
	"github.com/stephanygrace/customer-portal/internal/notify"
	"github.com/stephanygrace/customer-portal/internal/portal"
	"github.com/stephanygrace/customer-portal/internal/scheduler"
	"github.com/stephanygrace/customer-portal/internal/store"
	"github.com/stephanygrace/customer-portal/internal/upstream"
)

// FailureStrategy is a route's reaction to an unreachable upstream.
type FailureStrategy int

const (
	// PropagateFailure answers with an error status.
	PropagateFailure FailureStrategy = iota
	// DegradeToPlaceholder answers 200 with placeholder data flagged "mock".
	DegradeToPlaceholder
)

func (s FailureStrategy) String() string {
	if s == DegradeToPlaceholder {
		return "degrade-to-placeholder"
	}
	return "propagate-failure"
}

// Upstream-backed routes.
const (
	RouteJobs     = "jobs"
	RouteBookings = "bookings"
	RouteBooking  = "booking"
	RouteDocument = "document"
)

// DefaultStrategies is the failure policy of each upstream-backed route.
var DefaultStrategies = map[string]FailureStrategy{
	RouteJobs:     PropagateFailure,
	RouteBookings: DegradeToPlaceholder,
	RouteBooking:  PropagateFailure,
	RouteDocument: PropagateFailure,
}

// TokenManager issues and verifies bearer tokens.
type TokenManager interface {
	auth.Authenticator
	Issue(id auth.Identity) (string, error)
}

// Handler serves the portal API.
type Handler struct {
	fetcher   upstream.Fetcher
	bookings  *portal.Bookings
	composer  *documents.Composer
	users     store.UserStore
	messages  store.MessageStore
	publisher notify.Publisher
	tokens    TokenManager
	prober    *scheduler.Prober

	// UpstreamTimeout bounds every upstream-touching request; zero disables it.
	UpstreamTimeout time.Duration
	Strategies      map[string]FailureStrategy
	Now             func() time.Time
}

// Deps groups the collaborators a Handler needs.
type Deps struct {
	Fetcher   upstream.Fetcher
	Composer  *documents.Composer
	Users     store.UserStore
	Messages  store.MessageStore
	Publisher notify.Publisher
	Tokens    TokenManager
	Prober    *scheduler.Prober
}

// NewHandler creates a Handler. A nil Publisher drops events and a nil
// Composer uses the standard tax rate.
func NewHandler(d Deps, upstreamTimeout time.Duration) *Handler {
	if d.Publisher == nil {
		d.Publisher = notify.NopPublisher{}
	}
	if d.Composer == nil {
		d.Composer = documents.NewComposer()
	}
	strategies := make(map[string]FailureStrategy, len(DefaultStrategies))
	for route, s := range DefaultStrategies {
		strategies[route] = s
	}
	return &Handler{
		fetcher:         d.Fetcher,
		bookings:        portal.NewBookings(d.Fetcher),
		composer:        d.Composer,
		users:           d.Users,
		messages:        d.Messages,
		publisher:       d.Publisher,
		tokens:          d.Tokens,
		prober:          d.Prober,
		UpstreamTimeout: upstreamTimeout,
		Strategies:      strategies,
		Now:             time.Now,
	}
}

// RegisterRoutes registers the portal API routes with the given Gin router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.GET("/health", h.Health)

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", h.Signup)
		authRoutes.POST("/login", h.Login)
	}

	protected := api.Group("/", auth.Middleware(h.tokens))
	{
		protected.GET("/jobs", h.ListJobs)
		protected.GET("/bookings", h.ListBookings)
		protected.GET("/bookings/:id", h.GetBooking)
		protected.GET("/bookings/:id/documents/:type", h.GetDocument)
		protected.GET("/bookings/:id/messages", h.ListMessages)
		protected.POST("/bookings/:id/messages", h.CreateMessage)
	}
}

func (h *Handler) strategy(route string) FailureStrategy {
	if s, ok := h.Strategies[route]; ok {
		return s
	}
	return PropagateFailure
}

// upstreamContext derives the context for upstream calls from the request.
func (h *Handler) upstreamContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.UpstreamTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.UpstreamTimeout)
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}
