package sessionhistory

import "sort"

// SortByRecency orders records newest first. Records with equal timestamps
// keep their relative order.
func SortByRecency(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp > records[j].Timestamp
	})
}

// Aggregate merges the records pooled from every store of one provider:
// newest first, one record per (workspace, title), at most limit results.
func Aggregate(records []Record, limit int) []Record {
	if limit < 1 || len(records) == 0 {
		return nil
	}
	sorted := append([]Record(nil), records...)
	SortByRecency(sorted)

	seen := make(map[dedupKey]bool, len(sorted))
	out := make([]Record, 0, min(limit, len(sorted)))
	for _, rec := range sorted {
		k := rec.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, rec)
		if len(out) == limit {
			break
		}
	}
	return out
}

// Combine merges per-provider results. Identity is provider-scoped, so no
// deduplication happens here.
func Combine(results [][]Record, limit int) []Record {
	if limit < 1 {
		return nil
	}
	var all []Record
	for _, rs := range results {
		all = append(all, rs...)
	}
	if len(all) == 0 {
		return nil
	}
	SortByRecency(all)
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}
