package models

import "time"

// EmailRecord is a normalized inbound email. Body is always plain text: any
// HTML input has been reduced to its text content before the record exists.
// Records are written once and never updated in place.
type EmailRecord struct {
	ID      string    `json:"id"`
	Subject string    `json:"subject"`
	From    string    `json:"from"`
	Date    time.Time `json:"date"`
	Body    string    `json:"body"`
}

// EmailSummary is one model-generated summary of a stored email. Date keeps
// the ISO-8601 string form from the stored record.
type EmailSummary struct {
	Subject string `json:"subject"`
	Date    string `json:"date"`
	From    string `json:"from"`
	Summary string `json:"summary"`
}
