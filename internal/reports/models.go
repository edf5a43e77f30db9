package reports

import (
	"time"

	"github.com/google/uuid"
)

// Report statuses
const (
	StatusPending       = "pending"
	StatusInvestigating = "investigating"
	StatusConfirmed     = "confirmed"
	StatusDismissed     = "dismissed"
)

// Report is a community-submitted fraud report
type Report struct {
	ID            uuid.UUID `json:"id"`
	ReporterEmail string    `json:"reporter_email"`
	ContentURL    string    `json:"content_url"`
	Description   string    `json:"description"`
	Platform      string    `json:"platform"`
	FraudType     string    `json:"fraud_type"`
	AmountLost    float64   `json:"amount_lost"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SubmitReportRequest is the report submission payload
type SubmitReportRequest struct {
	ReporterEmail string  `json:"reporter_email" validate:"required,email"`
	ContentURL    string  `json:"content_url" validate:"omitempty,url"`
	Description   string  `json:"description" validate:"required,min=20,max=5000"`
	Platform      string  `json:"platform" validate:"max=100"`
	FraudType     string  `json:"fraud_type" validate:"required,fraud_type"`
	AmountLost    float64 `json:"amount_lost" validate:"gte=0"`
}

// UpdateStatusRequest transitions a report's status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,report_status"`
}
