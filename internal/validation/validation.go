package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("clock", validateClock)
}

func validateClock(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	normalized, err := models.NormalizeClock(s)
	return err == nil && normalized == s
}

// NormalizeFields trims the text fields and zero-pads the time so a value
// like "7:05" is accepted as "07:05".
func NormalizeFields(f models.EntryFields) models.EntryFields {
	f.Time = NormalizeTime(f.Time)
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
	return f
}

// NormalizeTime trims s and zero-pads it when it parses as a clock value.
// Anything else is returned trimmed for ValidateTime to reject.
func NormalizeTime(s string) string {
	s = strings.TrimSpace(s)
	if t, err := models.NormalizeClock(s); err == nil {
		return t
	}
	return s
}

// ValidateFields checks a new entry's fields. Empty time or title yields a
// ValidationError wrapping ErrMissingField.
func ValidateFields(f models.EntryFields) error {
	return translate(validate.Struct(f))
}

// ValidateEntry checks a stored entry.
func ValidateEntry(e models.ScheduleEntry) error {
	return translate(validate.Struct(e))
}

// ValidateTime checks a single HH:MM value.
func ValidateTime(s string) error {
	return translate(validate.Var(s, "required,clock"))
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	if field == "" {
		field = "time"
	}
	switch fe.Tag() {
	case "required":
		return apperrors.Missing(field)
	case "clock":
		return apperrors.Invalid(field, "time must be HH:MM between 00:00 and 23:59")
	default:
		return apperrors.Invalid(field, fe.Error())
	}
}
