package tui

import (
	"testing"

	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/models"
)

func TestCheckTime(t *testing.T) {
	check := checkTime(i18n.New(i18n.English))
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"07:05", false},
		{"7:05", false},
		{" 9:30 ", false},
		{"23:59", false},
		{"", true},
		{"24:00", true},
		{"7:5", true},
		{"noon", true},
	}
	for _, tt := range tests {
		if err := check(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("checkTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestEntryFormPadsTime(t *testing.T) {
	f := &EntryFormModel{Time: "7:05", Title: " Walk ", Day: models.Monday}
	if got := f.fields(); got.Time != "07:05" || got.Title != "Walk" {
		t.Errorf("fields() = %+v", got)
	}
	p := f.patch(models.Monday)
	if *p.Time != "07:05" || p.Day != nil {
		t.Errorf("patch() time %q day %v", *p.Time, p.Day)
	}
}
