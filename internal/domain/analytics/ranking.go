package analytics

import (
	"sort"
	"strings"
)

const DefaultTopN = 5

type RankEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// TopN groups records by key, counts each group and returns the n largest
// groups. Ties keep the order in which groups were first seen. Records with an
// empty key are skipped.
func TopN[T any](records []T, key func(T) string, n int) []RankEntry {
	if n <= 0 || key == nil {
		return []RankEntry{}
	}

	idx := make(map[string]int)
	entries := make([]RankEntry, 0)
	for _, r := range records {
		k := strings.TrimSpace(key(r))
		if k == "" {
			continue
		}
		if i, ok := idx[k]; ok {
			entries[i].Count++
			continue
		}
		idx[k] = len(entries)
		entries = append(entries, RankEntry{Key: k, Count: 1})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
