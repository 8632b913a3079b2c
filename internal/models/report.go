package models

import "time"

// ReportFilter carries the normalised set of optional constraints applied
// uniformly across every query that feeds a single report. A zero value
// matches every record.
type ReportFilter struct {
	AcademicYearID string     `json:"academic_year_id,omitempty"`
	TermID         string     `json:"term_id,omitempty"`
	ClassID        string     `json:"class_id,omitempty"`
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (f ReportFilter) IsEmpty() bool {
	return f.AcademicYearID == "" && f.TermID == "" && f.ClassID == "" &&
		f.DateFrom == nil && f.DateTo == nil
}
