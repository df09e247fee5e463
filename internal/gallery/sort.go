package gallery

import (
	"sort"
	"strings"
)

// SortImages orders items in place. The sort is stable, so ties keep their
// scan order. Entries without a timestamp go last when sorting by date, in
// either direction.
func SortImages(items []ImageEntry, mode SortMode) {
	desc := mode.Order == SortDesc

	switch mode.Field {
	case SortByName:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
			if desc {
				return a > b
			}
			return a < b
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			a, b := items[i], items[j]
			if a.HasModTime != b.HasModTime {
				return a.HasModTime
			}
			if !a.HasModTime {
				return false
			}
			if desc {
				return a.ModTime.After(b.ModTime)
			}
			return a.ModTime.Before(b.ModTime)
		})
	}
}

func sortSubdirs(items []SubdirEntry) {
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
}
