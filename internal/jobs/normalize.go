// Package jobs turns raw upstream job records into canonical bookings.
//
// Every canonical field is resolved through an ordered chain of candidate
// extractors; the first one that yields a usable value wins. Date fields go
// through DateField so the upstream's zero-date sentinel is never selected.
package jobs

import (
	"fmt"

	"github.com/stephanygrace/customer-portal/internal/models"
)

// NormalizationError is returned for a raw record that lacks a uuid.
type NormalizationError struct {
	Field  string
	Record models.RawRecord
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("job record has no %s", e.Field)
}

func (e *NormalizationError) Unwrap() error {
	return models.ErrNormalization
}

// Fallback chains, one per canonical field. The job number chain is built per
// record because its last step depends on the uuid.
var (
	StatusChain = []Extractor{Field("status"), Field("status_name")}

	ScheduledStartChain = []Extractor{
		DateField("work_order_date"),
		DateField("date"),
		DateField("scheduled_start"),
		DateField("start_date"),
		DateField("created_at"),
	}

	ScheduledEndChain = []Extractor{
		DateField("completion_date"),
		DateField("scheduled_end"),
		DateField("end_date"),
	}

	DescriptionChain = []Extractor{Field("job_description"), Field("description"), Field("notes")}

	AddressChain = []Extractor{Field("job_address"), Field("address"), Field("site_address")}

	ContactChain = []Extractor{Field("contact_uuid"), Nested("contact", "uuid")}

	TitleChain = []Extractor{FirstLine("job_description"), Field("name")}
)

// UUID returns the record's uuid, or a NormalizationError.
func UUID(raw models.RawRecord) (string, error) {
	id, ok := Field("uuid")(raw)
	if !ok {
		return "", &NormalizationError{Field: "uuid", Record: raw}
	}
	return id, nil
}

// JobNumber resolves the human-facing job number. When upper is set, the
// uuid-prefix fallback is upper-cased, as printed on documents.
func JobNumber(raw models.RawRecord, upper bool) string {
	return FirstOr(raw, "",
		Field("generated_job_id"),
		Field("job_number"),
		Prefix("uuid", 8, upper),
	)
}

// Normalize converts one raw job record into a Booking. It fails only when
// the record has no uuid.
func Normalize(raw models.RawRecord) (models.Booking, error) {
	id, err := UUID(raw)
	if err != nil {
		return models.Booking{}, err
	}

	jobNumber := JobNumber(raw, false)
	booking := models.Booking{
		UUID:           id,
		JobNumber:      jobNumber,
		Name:           FirstOr(raw, "Job "+jobNumber, TitleChain...),
		Status:         FirstOr(raw, "Unknown", StatusChain...),
		ScheduledStart: FirstOr(raw, "", ScheduledStartChain...),
		ScheduledEnd:   FirstOr(raw, "", ScheduledEndChain...),
		Description:    FirstOr(raw, "", DescriptionChain...),
		Address:        FirstOr(raw, "", AddressChain...),
		ContactUUID:    FirstOr(raw, "", ContactChain...),
		Vehicle:        VehicleOf(raw),
	}
	return booking, nil
}

// NormalizeDetail converts a raw job record into the single-booking view.
func NormalizeDetail(raw models.RawRecord) (models.BookingDetail, error) {
	booking, err := Normalize(raw)
	if err != nil {
		return models.BookingDetail{}, err
	}

	paymentAmount, _ := Number(raw, "payment_amount")
	return models.BookingDetail{
		Booking:             booking,
		WorkDoneDescription: FirstOr(raw, "", Field("work_done_description")),
		BillingAddress:      FirstOr(raw, "", Field("billing_address")),
		TotalInvoiceAmount:  FirstOr(raw, "0", Field("total_invoice_amount")),
		PaymentAmount:       paymentAmount,
		PaymentMethod:       FirstOr(raw, "", Field("payment_method")),
		QuoteDate:           OptionalDate(raw, "quote_date"),
		WorkOrderDate:       OptionalDate(raw, "work_order_date"),
		PaymentDate:         OptionalDate(raw, "payment_date"),
	}, nil
}

// NormalizeAll normalizes records in order and stops at the first failure.
func NormalizeAll(raws []models.RawRecord) ([]models.Booking, error) {
	bookings := make([]models.Booking, 0, len(raws))
	for i, raw := range raws {
		booking, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}

// FilterByIDs keeps the records whose uuid is accepted by has, preserving order.
// Records without a uuid are dropped.
func FilterByIDs(raws []models.RawRecord, has func(string) bool) []models.RawRecord {
	var kept []models.RawRecord
	for _, raw := range raws {
		if id, ok := Field("uuid")(raw); ok && has(id) {
			kept = append(kept, raw)
		}
	}
	return kept
}

// VehicleOf remaps the nested vehicle object, or returns nil when the record
// carries none.
func VehicleOf(raw models.RawRecord) *models.Vehicle {
	obj, ok := raw["vehicle"].(map[string]interface{})
	if !ok {
		return nil
	}
	v := models.RawRecord(obj)
	return &models.Vehicle{
		Make:  FirstOr(v, "", Field("make")),
		Model: FirstOr(v, "", Field("model")),
		Year:  FirstOr(v, "", Field("year")),
		Rego:  FirstOr(v, "", Field("registration"), Field("rego")),
		VIN:   FirstOr(v, "", Field("vin")),
	}
}

// PlaceholderVehicle is printed on documents for jobs without vehicle data.
func PlaceholderVehicle() models.Vehicle {
	return models.Vehicle{Make: "N/A", Model: "N/A", Year: "N/A", Rego: "N/A", VIN: "N/A"}
}
