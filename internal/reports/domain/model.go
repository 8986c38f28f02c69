package domain

import "time"

// Report is the metadata for one uploaded medical document. The file bytes
// live behind StorageRef in the file store; the core never interprets it.
type Report struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	Title      string    `json:"title"`
	ReportType string    `json:"report_type"`
	StorageRef string    `json:"-"`
	FileName   string    `json:"file_name"`
	ReportDate time.Time `json:"report_date"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateInput carries the caller-supplied fields for a new report.
type CreateInput struct {
	Title      string
	ReportType string
	StorageRef string
	FileName   string
	ReportDate time.Time
	Notes      *string
}

// Filter narrows an owner's report listing. Zero values mean no constraint;
// all set filters combine with AND.
type Filter struct {
	ReportType string
	StartDate  *time.Time
	EndDate    *time.Time
	Search     string // case-insensitive substring over title or notes
}
