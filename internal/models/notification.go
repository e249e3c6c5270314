package models

// NotificationData carries enough to navigate back to the entry
type NotificationData struct {
	EntryID string `json:"scheduleId"`
	Day     Day    `json:"day"`
	Time    string `json:"time"`
}

// Notification is the payload handed to a deliverer. Tag equals the entry
// id so a newer reminder for the same entry replaces an older one.
type Notification struct {
	Title string           `json:"title"`
	Body  string           `json:"body"`
	Icon  string           `json:"icon,omitempty"`
	Tag   string           `json:"tag"`
	Data  NotificationData `json:"data"`
}
