package artifacts

import "sort"

type summaryKey struct {
	pattern  string
	category Category
	safety   Safety
}

// Summarize groups artifacts by (pattern, category, safety). Groups are
// sorted by pattern name; items keep their input order. Unmeasured artifacts
// contribute zero bytes.
func Summarize(items []Artifact) []Summary {
	index := make(map[summaryKey]int)
	out := []Summary{}

	for _, item := range items {
		key := summaryKey{item.PatternMatched, item.Category, item.Safety}
		var size int64
		if item.SizeBytes != nil {
			size = *item.SizeBytes
		}

		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, Summary{
				Pattern:        item.PatternMatched,
				Category:       item.Category,
				Safety:         item.Safety,
				Count:          1,
				TotalSizeBytes: size,
				Items:          []Artifact{item},
			})
			continue
		}

		out[i].Count++
		out[i].TotalSizeBytes += size
		out[i].Items = append(out[i].Items, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Pattern < out[j].Pattern
	})

	return out
}

// Flatten returns every artifact in groups, in group order.
func Flatten(groups []Summary) []Artifact {
	var out []Artifact
	for _, g := range groups {
		out = append(out, g.Items...)
	}
	return out
}
