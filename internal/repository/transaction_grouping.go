package repository

// TransactionGrouping defines one projection over the payment join: its join
// set, grouping keys, aggregate columns and sort order. The set of groupings
// is closed; an unrecognised key resolves to the unsegmented summary.
type TransactionGrouping interface {
	// Key returns the groupBy value the grouping answers to.
	Key() string
	// Query returns the full SELECT statement given a WHERE fragment built
	// from the shared report filter.
	Query(where string) string
}

const (
	GroupByStudent       = "student"
	GroupByClass         = "class"
	GroupByTerm          = "term"
	GroupByPaymentType   = "payment_type"
	GroupByPaymentMethod = "payment_method"
	GroupByDate          = "date"
	// GroupBySummary is the fallback for unrecognised keys: a single
	// unsegmented row over the whole filtered set.
	GroupBySummary = "summary"
)

// GroupingFor resolves a groupBy key to its strategy. Unknown keys fall back
// to the unsegmented summary; that is the default terminal state, not an
// error.
func GroupingFor(key string) TransactionGrouping {
	for _, grouping := range allGroupings {
		if grouping.Key() == key {
			return grouping
		}
	}
	return summaryGrouping{}
}

var allGroupings = []TransactionGrouping{
	studentGrouping{},
	classGrouping{},
	termGrouping{},
	paymentTypeGrouping{},
	paymentMethodGrouping{},
	dateGrouping{},
	summaryGrouping{},
}

// studentGrouping aggregates per student with paid/pending subtotals and the
// number of distinct payment categories the student was charged under.
type studentGrouping struct{}

func (studentGrouping) Key() string { return GroupByStudent }

func (studentGrouping) Query(where string) string {
	return `SELECT p.student_id AS group_key, s.full_name AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        SUM(CASE WHEN p.status = 'Paid' THEN p.amount ELSE 0 END) AS paid_amount,
        SUM(CASE WHEN p.status = 'Pending' THEN p.amount ELSE 0 END) AS pending_amount,
        COUNT(DISTINCT p.payment_type) AS payment_type_count
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where + `
        GROUP BY p.student_id, s.full_name
        ORDER BY total_amount DESC`
}

// classGrouping aggregates per class. The inner join to classes is
// deliberate: payments by students without a class assignment carry no
// meaning in this view.
type classGrouping struct{}

func (classGrouping) Key() string { return GroupByClass }

func (classGrouping) Query(where string) string {
	return `SELECT c.id AS group_key, c.name AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        AVG(p.amount) AS average_amount,
        COUNT(DISTINCT p.student_id) AS student_count
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN classes c ON c.id = s.class_id
        ` + where + `
        GROUP BY c.id, c.name
        ORDER BY total_amount DESC`
}

// termGrouping aggregates per term, newest activity first.
type termGrouping struct{}

func (termGrouping) Key() string { return GroupByTerm }

func (termGrouping) Query(where string) string {
	return `SELECT t.id AS group_key, t.name AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        COUNT(DISTINCT p.student_id) AS student_count,
        MIN(p.payment_date) AS first_payment_at,
        MAX(p.payment_date) AS last_payment_at
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN terms t ON t.id = p.term_id
        ` + where + `
        GROUP BY t.id, t.name
        ORDER BY last_payment_at DESC`
}

// paymentTypeGrouping aggregates per free-text payment category with amount
// spread statistics.
type paymentTypeGrouping struct{}

func (paymentTypeGrouping) Key() string { return GroupByPaymentType }

func (paymentTypeGrouping) Query(where string) string {
	return `SELECT p.payment_type AS group_key, p.payment_type AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        AVG(p.amount) AS average_amount,
        MIN(p.amount) AS min_amount,
        MAX(p.amount) AS max_amount
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where + `
        GROUP BY p.payment_type
        ORDER BY total_amount DESC`
}

// paymentMethodGrouping aggregates per configured payment channel.
type paymentMethodGrouping struct{}

func (paymentMethodGrouping) Key() string { return GroupByPaymentMethod }

func (paymentMethodGrouping) Query(where string) string {
	return `SELECT m.id AS group_key, m.name AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        AVG(p.amount) AS average_amount,
        COUNT(DISTINCT p.student_id) AS student_count
        FROM payments p
        JOIN students s ON s.id = p.student_id
        JOIN payment_methods m ON m.id = p.payment_method_id
        ` + where + `
        GROUP BY m.id, m.name
        ORDER BY total_amount DESC`
}

// dateGrouping aggregates per payment day, newest first.
type dateGrouping struct{}

func (dateGrouping) Key() string { return GroupByDate }

func (dateGrouping) Query(where string) string {
	return `SELECT TO_CHAR(p.payment_date::date, 'YYYY-MM-DD') AS group_key,
        TO_CHAR(p.payment_date::date, 'YYYY-MM-DD') AS group_label,
        COUNT(*) AS transaction_count,
        SUM(p.amount) AS total_amount,
        COUNT(DISTINCT p.student_id) AS student_count
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where + `
        GROUP BY p.payment_date::date
        ORDER BY group_key DESC`
}

// summaryGrouping is the unsegmented fallback: one row with count, total and
// average over the whole filtered set.
type summaryGrouping struct{}

func (summaryGrouping) Key() string { return GroupBySummary }

func (summaryGrouping) Query(where string) string {
	return `SELECT 'all' AS group_key, 'All Transactions' AS group_label,
        COUNT(*) AS transaction_count,
        COALESCE(SUM(p.amount), 0) AS total_amount,
        COALESCE(AVG(p.amount), 0) AS average_amount
        FROM payments p
        JOIN students s ON s.id = p.student_id
        ` + where
}
