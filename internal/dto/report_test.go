package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/scholix-api/pkg/errors"
)

func TestFilterPassesThroughIDs(t *testing.T) {
	query := ReportQuery{YearID: "year-1", TermID: "term-1", ClassID: "class-1"}
	filter, err := query.Filter()
	require.NoError(t, err)
	require.Equal(t, "year-1", filter.AcademicYearID)
	require.Equal(t, "term-1", filter.TermID)
	require.Equal(t, "class-1", filter.ClassID)
	require.Nil(t, filter.DateFrom)
	require.Nil(t, filter.DateTo)
}

func TestFilterExtendsDateToToEndOfDay(t *testing.T) {
	query := ReportQuery{DateFrom: "2025-03-01", DateTo: "2025-03-31"}
	filter, err := query.Filter()
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), *filter.DateFrom)
	require.Equal(t, time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC), *filter.DateTo)
}

func TestFilterSameDayRangeIsValid(t *testing.T) {
	query := ReportQuery{DateFrom: "2025-03-01", DateTo: "2025-03-01"}
	filter, err := query.Filter()
	require.NoError(t, err)
	require.True(t, filter.DateTo.After(*filter.DateFrom))
}

func TestFilterRejectsMalformedDates(t *testing.T) {
	for _, query := range []ReportQuery{
		{DateFrom: "03/01/2025"},
		{DateTo: "2025-3-1"},
		{DateFrom: "yesterday"},
	} {
		_, err := query.Filter()
		require.Error(t, err)
		require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestFilterRejectsInvertedRange(t *testing.T) {
	query := ReportQuery{DateFrom: "2025-03-10", DateTo: "2025-03-01"}
	_, err := query.Filter()
	require.Error(t, err)
	require.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
