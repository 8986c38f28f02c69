package domain

import "time"

// VitalReading is one numeric measurement. Value is unit-less on its own;
// Unit gives it meaning. No plausibility checks are applied to Value.
type VitalReading struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	VitalType  string    `json:"vital_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	RecordedAt time.Time `json:"recorded_at"`
	Notes      *string   `json:"notes,omitempty"`
	ReportID   *string   `json:"report_id,omitempty"`
}

// Filter narrows an owner's vitals listing. Zero values mean no constraint.
type Filter struct {
	VitalType string
	Start     *time.Time
	End       *time.Time
}

// TrendPoint is one (value, time) sample inside a series.
type TrendPoint struct {
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"date"`
}

// TrendSeries is the per-type chart series: points sorted ascending by time.
// Types with no readings in range produce no series at all.
type TrendSeries struct {
	Type   string       `json:"type"`
	Unit   string       `json:"unit"`
	Points []TrendPoint `json:"data"`
}
