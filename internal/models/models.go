package models

import (
	"time"
)

// RawRecord is a job or contact record exactly as the upstream platform
// returned it. Field presence and value types vary between records.
type RawRecord map[string]interface{}

// Vehicle is the remapped vehicle sub-object of a job.
type Vehicle struct {
	Make  string `json:"make"`
	Model string `json:"model"`
	Year  string `json:"year"`
	Rego  string `json:"rego"`
	VIN   string `json:"vin"`
}

// Booking is the canonical, upstream-independent view of a job.
// @Description Booking is a normalized upstream job as shown to the customer.
type Booking struct {
	UUID           string   `json:"uuid"`
	JobNumber      string   `json:"job_number"`
	Name           string   `json:"name"`
	Status         string   `json:"status"`
	ScheduledStart string   `json:"scheduled_start,omitempty"`
	ScheduledEnd   string   `json:"scheduled_end,omitempty"`
	Description    string   `json:"description"`
	Address        string   `json:"address"`
	ContactUUID    string   `json:"contact_uuid,omitempty"`
	Vehicle        *Vehicle `json:"vehicle,omitempty"`
}

// BookingDetail extends Booking with the billing fields shown on the single
// booking view. Nullable dates are serialized as null rather than omitted.
// @Description BookingDetail is the single-booking view including billing state.
type BookingDetail struct {
	Booking
	WorkDoneDescription string  `json:"work_done_description"`
	BillingAddress      string  `json:"billing_address"`
	TotalInvoiceAmount  string  `json:"total_invoice_amount"`
	PaymentAmount       float64 `json:"payment_amount"`
	PaymentMethod       string  `json:"payment_method"`
	QuoteDate           *string `json:"quote_date"`
	WorkOrderDate       *string `json:"work_order_date"`
	PaymentDate         *string `json:"payment_date"`
}

// DocumentKind discriminates quotes from invoices.
type DocumentKind string

const (
	DocumentQuote   DocumentKind = "quote"
	DocumentInvoice DocumentKind = "invoice"
)

// ParseDocumentKind maps a path segment to a DocumentKind.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch DocumentKind(s) {
	case DocumentQuote, DocumentInvoice:
		return DocumentKind(s), true
	}
	return "", false
}

// DocumentCustomer is the billing party printed on a document.
type DocumentCustomer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// LineItem is a single billed line on a document.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Total       float64 `json:"total"`
}

// Document is a quote or an invoice derived from a job. Subtotal and Tax are
// always derived from Total.
// @Description Document is a quote or invoice composed from an upstream job.
type Document struct {
	Type           DocumentKind     `json:"type"`
	DocumentNumber string           `json:"documentNumber"`
	Date           string           `json:"date"`
	Customer       DocumentCustomer `json:"customer"`
	Vehicle        Vehicle          `json:"vehicle"`
	LineItems      []LineItem       `json:"services"`
	Subtotal       float64          `json:"subtotal"`
	Tax            float64          `json:"gst"`
	Total          float64          `json:"total"`
	WorkOrderDate  string           `json:"work_order_date,omitempty"`
	Notes          string           `json:"notes"`

	// Quote only
	ValidUntil string `json:"validUntil,omitempty"`

	// Invoice only
	DueDate       string `json:"dueDate,omitempty"`
	PaymentStatus string `json:"paymentStatus,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	PaymentDate   string `json:"paymentDate,omitempty"`
}

// CustomerProfile is the read-only customer view handed to the core.
type CustomerProfile struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Customer is a portal account.
// @Description Customer is a registered portal user; the password hash is never serialized.
type Customer struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Email              *string   `json:"email,omitempty" gorm:"type:varchar(255);uniqueIndex"`
	Phone              *string   `json:"phone,omitempty" gorm:"type:varchar(50);uniqueIndex"`
	Name               string    `json:"name" gorm:"type:varchar(255);not null"`
	PasswordHash       string    `json:"-" gorm:"type:varchar(255);not null"`
	UpstreamCustomerID string    `json:"upstream_customer_id" gorm:"type:varchar(100)"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Profile returns the read-only view of the customer.
func (c Customer) Profile() CustomerProfile {
	p := CustomerProfile{Name: c.Name}
	if c.Email != nil {
		p.Email = *c.Email
	}
	if c.Phone != nil {
		p.Phone = *c.Phone
	}
	return p
}

// Message is one entry in a booking's conversation thread.
// @Description Message is a free-text note attached to a booking.
type Message struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UUID      string    `json:"uuid" gorm:"type:varchar(36);uniqueIndex;not null"`
	BookingID string    `json:"bookingId" gorm:"type:varchar(100);index;not null"`
	UserID    string    `json:"userId" gorm:"type:varchar(100);not null"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"autoCreateTime"`
}

// SignupRequest defines the request payload for creating an account.
type SignupRequest struct {
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest defines the request payload for logging in.
type LoginRequest struct {
	LoginMethod string `json:"loginMethod"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Password    string `json:"password"`
}

// CreateMessageRequest defines the request payload for posting a message.
type CreateMessageRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}
