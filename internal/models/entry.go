package models

import "sort"

// ScheduleEntry is one recurring weekly activity
type ScheduleEntry struct {
	ID                  string  `json:"id"`
	Day                 Day     `json:"day,omitempty"`
	Time                string  `json:"time" validate:"required,clock"` // HH:MM
	Title               string  `json:"title" validate:"required"`
	Description         string  `json:"description"`
	NotificationEnabled bool    `json:"notificationEnabled"`
	Completed           bool    `json:"completed"`
	CompletedAt         *string `json:"completedAt"` // RFC3339 timestamp
	CreatedAt           string  `json:"createdAt"`   // RFC3339 timestamp
	UpdatedAt           string  `json:"updatedAt,omitempty"`
}

// EntryFields are the user-supplied fields of a new entry
type EntryFields struct {
	Time                string `validate:"required,clock"`
	Title               string `validate:"required"`
	Description         string
	NotificationEnabled bool
}

// EntryPatch holds optional replacements for an existing entry. Nil fields
// are left untouched.
type EntryPatch struct {
	Day                 *Day
	Time                *string
	Title               *string
	Description         *string
	NotificationEnabled *bool
}

// Empty reports whether the patch changes nothing.
func (p EntryPatch) Empty() bool {
	return p.Day == nil && p.Time == nil && p.Title == nil && p.Description == nil && p.NotificationEnabled == nil
}

// Apply merges the patch into e, ignoring Day.
func (p EntryPatch) Apply(e *ScheduleEntry) {
	if p.Time != nil {
		e.Time = *p.Time
	}
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.NotificationEnabled != nil {
		e.NotificationEnabled = *p.NotificationEnabled
	}
}

// SortEntries orders a bucket by time ascending. Equal times keep their
// insertion order.
func SortEntries(entries []ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time < entries[j].Time
	})
}

func (e ScheduleEntry) clone() ScheduleEntry {
	c := e
	if e.CompletedAt != nil {
		at := *e.CompletedAt
		c.CompletedAt = &at
	}
	return c
}
