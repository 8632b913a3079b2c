package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupingForResolvesEveryKey(t *testing.T) {
	keys := []string{
		GroupByStudent,
		GroupByClass,
		GroupByTerm,
		GroupByPaymentType,
		GroupByPaymentMethod,
		GroupByDate,
		GroupBySummary,
	}
	for _, key := range keys {
		require.Equal(t, key, GroupingFor(key).Key())
	}
}

func TestGroupingForUnknownKeyFallsBackToSummary(t *testing.T) {
	for _, key := range []string{"", "teacher", "STUDENT", "per-day"} {
		grouping := GroupingFor(key)
		require.Equal(t, GroupBySummary, grouping.Key(), "key %q", key)
		require.Contains(t, grouping.Query("WHERE 1=1"), "'All Transactions'")
	}
}

func TestGroupingQueriesEmbedFilterClause(t *testing.T) {
	const where = "WHERE 1=1 AND p.term_id = $1"
	for _, grouping := range allGroupings {
		query := grouping.Query(where)
		require.Contains(t, query, where, "grouping %s", grouping.Key())
		require.Contains(t, query, "FROM payments p", "grouping %s", grouping.Key())
		require.Contains(t, query, "JOIN students s ON s.id = p.student_id", "grouping %s", grouping.Key())
	}
}

func TestStudentGroupingSplitsPaidAndPending(t *testing.T) {
	query := studentGrouping{}.Query("WHERE 1=1")
	require.Contains(t, query, "paid_amount")
	require.Contains(t, query, "pending_amount")
	require.Contains(t, query, "payment_type_count")
	require.Contains(t, query, "ORDER BY total_amount DESC")
}

func TestDateGroupingSortsNewestFirst(t *testing.T) {
	query := dateGrouping{}.Query("WHERE 1=1")
	require.Contains(t, query, "TO_CHAR(p.payment_date::date, 'YYYY-MM-DD')")
	require.True(t, strings.HasSuffix(strings.TrimSpace(query), "ORDER BY group_key DESC"))
}

func TestSummaryGroupingHasNoGroupBy(t *testing.T) {
	query := summaryGrouping{}.Query("WHERE 1=1")
	require.NotContains(t, query, "GROUP BY")
	require.Contains(t, query, "COALESCE(SUM(p.amount), 0)")
}
