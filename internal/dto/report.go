package dto

import (
	"time"

	"github.com/noah-isme/scholix-api/internal/models"
	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

const dateLayout = "2006-01-02"

// ReportQuery carries the optional filter parameters shared by every report
// endpoint. Absent parameters mean the dimension is unconstrained.
type ReportQuery struct {
	YearID   string `form:"yearId"`
	TermID   string `form:"termId"`
	ClassID  string `form:"classId"`
	DateFrom string `form:"dateFrom"`
	DateTo   string `form:"dateTo"`
}

// Filter normalises the raw query values into a typed filter. DateTo is
// extended to end-of-day so same-day records with a time-of-day component are
// not silently excluded when matched against timestamp columns.
func (q ReportQuery) Filter() (models.ReportFilter, error) {
	filter := models.ReportFilter{
		AcademicYearID: q.YearID,
		TermID:         q.TermID,
		ClassID:        q.ClassID,
	}
	if q.DateFrom != "" {
		from, err := time.Parse(dateLayout, q.DateFrom)
		if err != nil {
			return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "dateFrom must be YYYY-MM-DD")
		}
		filter.DateFrom = &from
	}
	if q.DateTo != "" {
		to, err := time.Parse(dateLayout, q.DateTo)
		if err != nil {
			return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "dateTo must be YYYY-MM-DD")
		}
		endOfDay := to.Add(24*time.Hour - time.Second)
		filter.DateTo = &endOfDay
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		return models.ReportFilter{}, appErrors.Clone(appErrors.ErrValidation, "dateTo must not precede dateFrom")
	}
	return filter, nil
}

// TransactionReportQuery adds the grouping key and detail flag used by the
// custom transaction report builder.
type TransactionReportQuery struct {
	ReportQuery
	GroupBy        string `form:"groupBy"`
	IncludeDetails bool   `form:"includeDetails"`
}

// ExportQuery selects the download format for the transaction report export.
type ExportQuery struct {
	TransactionReportQuery
	Format string `form:"format" validate:"omitempty,oneof=csv pdf"`
}
