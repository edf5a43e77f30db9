package advisors

import (
	"time"

	"github.com/google/uuid"

	"github.com/investguard/investguard/internal/engine"
)

// Advisor registration statuses
const (
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusRevoked   = "revoked"
)

// Advisor is a registered investment advisor directory entry
type Advisor struct {
	ID               uuid.UUID  `json:"id"`
	LicenseNumber    string     `json:"license_number"`
	Name             string     `json:"name"`
	RegistrationDate *time.Time `json:"registration_date,omitempty"`
	Status           string     `json:"status"`
	Firm             string     `json:"firm"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	Specializations  []string   `json:"specializations"`
	CreatedAt        time.Time  `json:"created_at"`
}

// VerifyRequest is the advisor verification payload
type VerifyRequest struct {
	LicenseNumber string `json:"license_number"`
	Name          string `json:"name"`
}

// VerifyResponse pairs the engine verdict with the full directory record
// when one matched
type VerifyResponse struct {
	Status           engine.VerificationStatus `json:"status"`
	Confidence       float64                   `json:"confidence"`
	MalformedLicense bool                      `json:"malformed_license,omitempty"`
	Advisor          *Advisor                  `json:"advisor,omitempty"`
}

// DirectoryStats counts directory entries by registration status
type DirectoryStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Suspended int64 `json:"suspended"`
	Revoked   int64 `json:"revoked"`
}
