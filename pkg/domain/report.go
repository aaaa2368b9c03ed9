package domain

// FeedReport is the per-feed outcome of one refresh cycle. Either
// NewItems is meaningful or Error is set, never both.
type FeedReport struct {
	Feed     string `json:"feed"`
	NewItems int    `json:"new_items"`
	Error    string `json:"error,omitempty"`
}

// Failed reports whether the feed ended the cycle in an error state
func (r FeedReport) Failed() bool { return r.Error != "" }

// CycleReport aggregates per-feed outcomes of a refresh cycle
type CycleReport struct {
	Results []FeedReport `json:"results"`
}

// TotalNewItems sums new items across all successfully processed feeds
func (c CycleReport) TotalNewItems() int {
	total := 0
	for _, r := range c.Results {
		if !r.Failed() {
			total += r.NewItems
		}
	}
	return total
}
