package model

import "sort"

// SortByValue sorts nodes by total value descending, then by taxonomy rank,
// then by name ascending. The sort is what anchors the largest categories to
// the layout's top-left corner, so it must be deterministic.
func SortByValue(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		vi, vj := nodes[i].TotalValue(), nodes[j].TotalValue()
		if vi != vj {
			return vi > vj
		}
		if nodes[i].Rank != nodes[j].Rank {
			return nodes[i].Rank < nodes[j].Rank
		}
		return nodes[i].Name < nodes[j].Name
	})
}
