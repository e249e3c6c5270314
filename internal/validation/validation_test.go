package validation

import (
	"strings"
	"testing"

	apperrors "github.com/julianstephens/weekly/internal/errors"
	"github.com/julianstephens/weekly/internal/models"
)

func TestValidateFields(t *testing.T) {
	tests := []struct {
		name        string
		fields      models.EntryFields
		wantMissing bool
		wantInvalid bool
	}{
		{"valid", models.EntryFields{Time: "07:30", Title: "Run"}, false, false},
		{"missing time", models.EntryFields{Title: "Run"}, true, false},
		{"missing title", models.EntryFields{Time: "07:30"}, true, false},
		{"bad time", models.EntryFields{Time: "25:00", Title: "Run"}, false, true},
		{"unpadded time", models.EntryFields{Time: "7:30", Title: "Run"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFields(tt.fields)
			if !tt.wantMissing && !tt.wantInvalid {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.IsValidation(err) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if got := apperrors.Is(err, apperrors.ErrMissingField); got != tt.wantMissing {
				t.Errorf("missing = %v, want %v (err %v)", got, tt.wantMissing, err)
			}
		})
	}
}

func TestNormalizeFields(t *testing.T) {
	f := NormalizeFields(models.EntryFields{Time: " 7:05 ", Title: "  Read  "})
	if f.Time != "07:05" || f.Title != "Read" {
		t.Errorf("NormalizeFields = %+v", f)
	}
	if err := ValidateFields(f); err != nil {
		t.Errorf("normalized fields should validate: %v", err)
	}

	blank := NormalizeFields(models.EntryFields{Time: "08:00", Title: "   "})
	if !apperrors.Is(ValidateFields(blank), apperrors.ErrMissingField) {
		t.Error("whitespace-only title should be missing")
	}
}

func TestNormalizeTime(t *testing.T) {
	tests := map[string]string{
		"7:05":   "07:05",
		" 9:30 ": "09:30",
		"12:00":  "12:00",
		"7:5":    "7:5",
		"noon":   "noon",
	}
	for in, want := range tests {
		if got := NormalizeTime(in); got != want {
			t.Errorf("NormalizeTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateTime(t *testing.T) {
	if err := ValidateTime("23:59"); err != nil {
		t.Errorf("ValidateTime(23:59) = %v", err)
	}
	if err := ValidateTime(""); !apperrors.Is(err, apperrors.ErrMissingField) {
		t.Errorf("ValidateTime(\"\") = %v, want missing field", err)
	}
	if err := ValidateTime("12:61"); err == nil || !strings.Contains(err.Error(), "HH:MM") {
		t.Errorf("ValidateTime(12:61) = %v", err)
	}
}
