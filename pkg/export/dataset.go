package export

// Dataset defines tabular export content. Footer, when present, renders as a
// trailing totals row keyed by the same headers.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
	Footer  map[string]string
}
