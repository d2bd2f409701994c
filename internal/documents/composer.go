// Package documents composes quotes and invoices from upstream job records.
package documents

import (
	"fmt"
	"strings"
	"time"

	"github.com/stephanygrace/customer-portal/internal/jobs"
	"github.com/stephanygrace/customer-portal/internal/models"
)

// DefaultTaxRate is the GST rate already included in the upstream's invoice
// total. Subtotal and tax are backed out of the total using this rate.
const DefaultTaxRate = 0.10

const (
	quoteValidity  = 30 * 24 * time.Hour
	invoiceDueTerm = 14 * 24 * time.Hour
	dateLayout     = "2006-01-02"

	defaultQuoteNotes   = "This quote is valid for 30 days."
	defaultInvoiceNotes = "Thank you for your business."
	defaultLineItem     = "Service"
	defaultCustomerName = "Customer"
)

var documentPrefixes = map[models.DocumentKind]string{
	models.DocumentQuote:   "QUOTE",
	models.DocumentInvoice: "INV",
}

// Composer derives documents from jobs. A zero TaxRate means no tax; use
// NewComposer for the standard rate.
type Composer struct {
	TaxRate float64
	Now     func() time.Time
}

// NewComposer returns a Composer using DefaultTaxRate and the wall clock.
func NewComposer() *Composer {
	return &Composer{TaxRate: DefaultTaxRate, Now: time.Now}
}

// Compose builds a quote or invoice for raw on behalf of customer.
func (c *Composer) Compose(kind models.DocumentKind, raw models.RawRecord, customer models.CustomerProfile) (models.Document, error) {
	prefix, ok := documentPrefixes[kind]
	if !ok {
		return models.Document{}, fmt.Errorf("%w: unknown document type %q", models.ErrValidation, kind)
	}
	if _, err := jobs.UUID(raw); err != nil {
		return models.Document{}, err
	}

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	total, _ := jobs.Number(raw, "total_invoice_amount")
	subtotal, tax := SplitTax(total, c.TaxRate)

	vehicle := jobs.PlaceholderVehicle()
	if v := jobs.VehicleOf(raw); v != nil {
		vehicle = *v
	}

	doc := models.Document{
		Type:           kind,
		DocumentNumber: prefix + "-" + jobs.JobNumber(raw, true),
		Date:           calendarDate(jobs.FirstOr(raw, "", jobs.DateField("work_order_date"), jobs.DateField("quote_date"), jobs.DateField("date")), now),
		Customer:       documentCustomer(raw, customer),
		Vehicle:        vehicle,
		LineItems: []models.LineItem{{
			Description: jobs.FirstOr(raw, defaultLineItem, jobs.Field("work_done_description"), jobs.FirstLine("job_description")),
			Quantity:    1,
			UnitPrice:   subtotal,
			Total:       subtotal,
		}},
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}
	if d := jobs.OptionalDate(raw, "work_order_date"); d != nil {
		doc.WorkOrderDate = calendarDate(*d, now)
	}

	switch kind {
	case models.DocumentQuote:
		doc.ValidUntil = now.Add(quoteValidity).Format(dateLayout)
		doc.Notes = jobs.FirstOr(raw, defaultQuoteNotes, jobs.Field("job_description"))
	case models.DocumentInvoice:
		doc.DueDate = now.Add(invoiceDueTerm).Format(dateLayout)
		doc.PaymentStatus = "Pending"
		if paid, _ := jobs.Number(raw, "payment_amount"); paid > 0 {
			doc.PaymentStatus = "Paid"
		}
		doc.PaymentMethod = jobs.FirstOr(raw, "", jobs.Field("payment_method"))
		if d := jobs.OptionalDate(raw, "payment_date"); d != nil {
			doc.PaymentDate = calendarDate(*d, now)
		}
		doc.Notes = jobs.FirstOr(raw, defaultInvoiceNotes, jobs.Field("work_done_description"), jobs.Field("job_description"))
	}
	return doc, nil
}

// SplitTax backs the tax component out of a tax-inclusive total.
func SplitTax(total, rate float64) (subtotal, tax float64) {
	subtotal = total / (1 + rate)
	return subtotal, total - subtotal
}

func documentCustomer(raw models.RawRecord, profile models.CustomerProfile) models.DocumentCustomer {
	name := profile.Name
	if name == "" {
		name = defaultCustomerName
	}
	return models.DocumentCustomer{
		Name:    name,
		Address: jobs.FirstOr(raw, "", jobs.Field("billing_address"), jobs.Field("job_address")),
		Phone:   profile.Phone,
		Email:   profile.Email,
	}
}

// calendarDate strips the time component from an upstream date. An empty or
// sentinel value falls back to today.
func calendarDate(v string, now time.Time) string {
	if jobs.IsSentinelOrAbsent(v) {
		return now.Format(dateLayout)
	}
	if i := strings.IndexAny(v, " T"); i >= 0 {
		return v[:i]
	}
	return v
}
