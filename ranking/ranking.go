package ranking

import (
	"sort"

	"go-vulndash/types"
)

// Entry is one ranked department.
type Entry struct {
	Code  string  `json:"code_dep"`
	Name  string  `json:"departement"`
	Value float64 `json:"value"`
}

// Result is a ranking plus the count of departments that could not take
// part because they miss the metric.
type Result struct {
	Metric   string  `json:"metric"`
	Entries  []Entry `json:"entries"`
	Excluded int     `json:"excluded"`
}

// TopN returns the n departments with the largest metric values.
// Ties on the metric break by department code ascending, so identical input
// always yields identical, identically ordered output.
func TopN(records []types.DepartmentRecord, metric string, n int) Result {
	return rank(records, metric, n, true)
}

// BottomN returns the n departments with the smallest metric values, same
// determinism guarantees as TopN.
func BottomN(records []types.DepartmentRecord, metric string, n int) Result {
	return rank(records, metric, n, false)
}

func rank(records []types.DepartmentRecord, metric string, n int, descending bool) Result {
	res := Result{Metric: metric}
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		v, ok := r.Value(metric)
		if !ok {
			res.Excluded++
			continue
		}
		entries = append(entries, Entry{Code: r.Code, Name: r.Name, Value: v})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if descending {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Code < entries[j].Code
	})

	if n >= 0 && n < len(entries) {
		entries = entries[:n]
	}
	res.Entries = entries
	return res
}
