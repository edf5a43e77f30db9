package validation

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate *validator.Validate
	once     sync.Once
)

var licensePattern = regexp.MustCompile(`^INA[0-9]{9}$`)

// Get returns the shared validator instance with custom validators registered
func Get() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
		_ = validate.RegisterValidation("severity", validateSeverity)
		_ = validate.RegisterValidation("content_type", validateContentType)
		_ = validate.RegisterValidation("alert_status", validateAlertStatus)
		_ = validate.RegisterValidation("report_status", validateReportStatus)
		_ = validate.RegisterValidation("fraud_type", validateFraudType)
		_ = validate.RegisterValidation("license_number", validateLicenseNumber)
	})
	return validate
}

// ValidateStruct validates a struct and converts validator errors to a
// field-level ValidationError
func ValidateStruct(s interface{}) error {
	if err := Get().Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return NewValidationError(errs)
		}
		return err
	}
	return nil
}

func validateSeverity(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "low", "medium", "high", "critical":
		return true
	}
	return false
}

func validateContentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "text", "url":
		return true
	}
	return false
}

func validateAlertStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "active", "resolved", "false_positive":
		return true
	}
	return false
}

func validateReportStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pending", "investigating", "confirmed", "dismissed":
		return true
	}
	return false
}

func validateFraudType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "investment_scam", "ponzi_scheme", "fake_advisor", "pump_and_dump", "phishing", "other":
		return true
	}
	return false
}

func validateLicenseNumber(fl validator.FieldLevel) bool {
	return licensePattern.MatchString(fl.Field().String())
}
