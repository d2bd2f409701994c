package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/stephanygrace/customer-portal/internal/auth"
	"github.com/stephanygrace/customer-portal/internal/models"
	"github.com/stephanygrace/customer-portal/internal/store"
)

// Signup godoc
// @Summary Register a customer account
// @Description Creates an account identified by email and/or phone and returns a bearer token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   account  body   models.SignupRequest  true  "Account to create"
// @Success 201 {object} map[string]interface{} "{success: true, user: Customer, token: string}"
// @Failure 400 {object} models.APIError "Validation error (VALIDATION_ERROR)"
// @Failure 409 {object} models.APIError "Email or phone already registered (CONFLICT_ERROR)"
// @Failure 500 {object} models.APIError "Internal Server Error"
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if len(req.Password) < auth.MinPasswordLength {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, fmt.Sprintf("Password must be at least %d characters", auth.MinPasswordLength), nil)
		return
	}
	if req.Email == "" && req.Phone == "" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "At least one identifier is required", nil)
		return
	}

	customer, err := NewCustomer(req, h.now().UnixMilli())
	if err != nil {
		log.Printf("[Auth] Failed to prepare account: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}
	if err := h.users.Create(c.Request.Context(), customer); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			RespondWithError(c, http.StatusConflict, models.ErrorCodeConflict, "User already exists", nil)
			return
		}
		log.Printf("[Auth] Failed to create account: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}

	h.respondWithToken(c, http.StatusCreated, customer)
}

// Login godoc
// @Summary Log in
// @Description Verifies email or phone credentials and returns a bearer token.
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials  body   models.LoginRequest  true  "loginMethod is email or phone"
// @Success 200 {object} map[string]interface{} "{success: true, user: Customer, token: string}"
// @Failure 400 {object} models.APIError "Validation error (VALIDATION_ERROR)"
// @Failure 401 {object} models.APIError "Bad credentials (INVALID_CREDENTIALS)"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeInvalidJSON, "Invalid request payload", gin.H{"reason": err.Error()})
		return
	}
	if req.Password == "" {
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Password is required", nil)
		return
	}

	ctx := c.Request.Context()
	var (
		customer *models.Customer
		err      error
	)
	switch req.LoginMethod {
	case "email":
		customer, err = h.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	case "phone":
		customer, err = h.users.GetByPhone(ctx, strings.TrimSpace(req.Phone))
	case "":
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Login method is required", nil)
		return
	default:
		RespondWithError(c, http.StatusBadRequest, models.ErrorCodeValidation, "Invalid login method", gin.H{"loginMethod": req.LoginMethod})
		return
	}
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		log.Printf("[Auth] Failed to look up account: %v", err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}
	if customer == nil || !auth.CheckPassword(customer.PasswordHash, req.Password) {
		RespondWithError(c, http.StatusUnauthorized, models.ErrorCodeInvalidCredentials, "Invalid credentials", nil)
		return
	}

	h.respondWithToken(c, http.StatusOK, customer)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, customer *models.Customer) {
	token, err := h.tokens.Issue(auth.Identity{ID: customer.ID, Email: customer.Profile().Email})
	if err != nil {
		log.Printf("[Auth] Failed to issue token for customer %d: %v", customer.ID, err)
		RespondWithError(c, http.StatusInternalServerError, models.ErrorCodeInternalServerError, "Internal server error", nil)
		return
	}
	RespondWithSuccess(c, status, gin.H{"user": customer, "token": token})
}

// NewCustomer builds an account from a signup request, hashing the password
// and assigning an upstream customer reference derived from nowMillis.
func NewCustomer(req models.SignupRequest, nowMillis int64) (*models.Customer, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Name:               req.Name,
		PasswordHash:       hash,
		UpstreamCustomerID: fmt.Sprintf("CUST%d", nowMillis),
	}
	if customer.Name == "" {
		customer.Name = "Customer"
	}
	if req.Email != "" {
		email := req.Email
		customer.Email = &email
	}
	if req.Phone != "" {
		phone := req.Phone
		customer.Phone = &phone
	}
	return customer, nil
}
