package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/weekly/internal/i18n"
	"github.com/julianstephens/weekly/internal/models"
	"github.com/julianstephens/weekly/internal/validation"
)

type formKind int

const (
	formNone formKind = iota
	formAdd
	formEdit
	formPermission
)

type EntryFormModel struct {
	Time        string
	Title       string
	Description string
	Days        []models.Day
	Day         models.Day
	Notify      bool
	ApplyToAll  bool
}

type PermissionFormModel struct {
	Allow bool
}

func dayOptions(cat *i18n.Catalog) []huh.Option[models.Day] {
	opts := make([]huh.Option[models.Day], len(models.Days))
	for i, d := range models.Days {
		opts[i] = huh.NewOption(cat.DayFull(d), d)
	}
	return opts
}

func timeField(cat *i18n.Catalog, value *string) *huh.Input {
	return huh.NewInput().
		Title(cat.Messages().Modal.Time).
		Placeholder("HH:MM").
		Value(value).
		Validate(checkTime(cat))
}

// checkTime accepts anything the registry would store, such as "7:05".
func checkTime(cat *i18n.Catalog) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(cat.Messages().Toast.FillRequired)
		}
		return validation.ValidateTime(validation.NormalizeTime(s))
	}
}

// titleField offers the titles already in use as completions.
func titleField(cat *i18n.Catalog, value *string, titles []string) *huh.Input {
	return huh.NewInput().
		Title(cat.Messages().Modal.ActivityName).
		Placeholder(cat.Messages().Modal.ActivityPlaceholder).
		Suggestions(titles).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(cat.Messages().Toast.FillRequired)
			}
			return nil
		})
}

func descriptionField(cat *i18n.Catalog, value *string) *huh.Text {
	return huh.NewText().
		Title(cat.Messages().Modal.Description).
		Placeholder(cat.Messages().Modal.DescriptionPlaceholder).
		Value(value)
}

func newAddForm(cat *i18n.Catalog, f *EntryFormModel, titles []string) *huh.Form {
	msg := cat.Messages().Modal
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(msg.AddTitle),
			timeField(cat, &f.Time),
			titleField(cat, &f.Title, titles),
			descriptionField(cat, &f.Description),
			huh.NewMultiSelect[models.Day]().
				Title(msg.ApplyDays).
				Options(dayOptions(cat)...).
				Value(&f.Days).
				Validate(func(days []models.Day) error {
					if len(days) == 0 {
						return errors.New(cat.Messages().Toast.SelectDays)
					}
					return nil
				}),
			huh.NewConfirm().
				Title(msg.EnableNotification).
				Value(&f.Notify),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func newEditForm(cat *i18n.Catalog, f *EntryFormModel, titles []string) *huh.Form {
	msg := cat.Messages().Modal
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title(msg.EditTitle),
			timeField(cat, &f.Time),
			titleField(cat, &f.Title, titles),
			descriptionField(cat, &f.Description),
			huh.NewSelect[models.Day]().
				Title(msg.ApplyDays).
				Options(dayOptions(cat)...).
				Value(&f.Day),
			huh.NewConfirm().
				Title(msg.EnableNotification).
				Value(&f.Notify),
			huh.NewConfirm().
				Title(msg.ApplyToAll).
				Value(&f.ApplyToAll),
		),
	).WithTheme(huh.ThemeDracula()).WithShowHelp(true)
}

func newPermissionForm(cat *i18n.Catalog, f *PermissionFormModel) *huh.Form {
	msg := cat.Messages().Permission
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(msg.Title).
				Description(msg.Message).
				Affirmative(msg.Allow).
				Negative(msg.Later).
				Value(&f.Allow),
		),
	).WithTheme(huh.ThemeDracula())
}

// fields converts the form into the registry's input.
func (f *EntryFormModel) fields() models.EntryFields {
	return models.EntryFields{
		Time:                validation.NormalizeTime(f.Time),
		Title:               strings.TrimSpace(f.Title),
		Description:         strings.TrimSpace(f.Description),
		NotificationEnabled: f.Notify,
	}
}

// patch converts the form into an update of an entry that lived on from.
func (f *EntryFormModel) patch(from models.Day) models.EntryPatch {
	fields := f.fields()
	p := models.EntryPatch{
		Time:                &fields.Time,
		Title:               &fields.Title,
		Description:         &fields.Description,
		NotificationEnabled: &fields.NotificationEnabled,
	}
	if f.Day != from && !f.ApplyToAll {
		day := f.Day
		p.Day = &day
	}
	return p
}
