package dataprocessing

import "sort"

// Default entry counts per group
const (
	DefaultDemandTopN = 5
	DefaultSalaryTopN = 10
)

// RankOptions controls top-N selection
type RankOptions struct {
	// TopN entries kept per group; zero or negative keeps all
	TopN int
	// Ascending ranks the smallest values first
	Ascending bool
}

// Ranking describes how to read the group, sort value and tie-break label of an item
type Ranking[T any] struct {
	// Group returns the grouping key; nil ranks all items as one group
	Group func(T) string
	Value func(T) float64
	Label func(T) string
}

// Rank returns the top entries of each group. Groups keep their order of first
// appearance. Within a group entries are ordered by value, then by label
// ascending, then by their position in items. The result is a new slice.
func Rank[T any](items []T, by Ranking[T], opts RankOptions) []T {
	var order []string
	groups := make(map[string][]T)
	for _, item := range items {
		key := ""
		if by.Group != nil {
			key = by.Group(item)
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	out := make([]T, 0, len(items))
	for _, key := range order {
		out = append(out, rankGroup(groups[key], by, opts)...)
	}
	return out
}

func rankGroup[T any](group []T, by Ranking[T], opts RankOptions) []T {
	sort.SliceStable(group, func(i, j int) bool {
		vi, vj := by.Value(group[i]), by.Value(group[j])
		if vi != vj {
			if opts.Ascending {
				return vi < vj
			}
			return vi > vj
		}
		if by.Label != nil {
			return by.Label(group[i]) < by.Label(group[j])
		}
		return false
	})

	if opts.TopN > 0 && len(group) > opts.TopN {
		group = group[:opts.TopN]
	}
	return group
}
