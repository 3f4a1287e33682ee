package entity

import "github.com/samber/lo"

type BatchItemResult struct {
	Index   int
	Success bool

	// Set when Success.
	Estimate Estimate

	// Set when !Success.
	Error     string
	ErrorCode string
}

// BatchReport holds one result per input item, in input order. Counts are
// derived from Results, never stored.
type BatchReport struct {
	Results []BatchItemResult
}

func (b BatchReport) Total() int {
	return len(b.Results)
}

func (b BatchReport) Succeeded() int {
	return lo.CountBy(b.Results, func(r BatchItemResult) bool {
		return r.Success
	})
}

func (b BatchReport) Failed() int {
	return b.Total() - b.Succeeded()
}
