package structs

import (
	"sort"
	"strconv"
	"strings"
)

// Canonical size display order: clothing sizes first in garment order, then
// numeric families (US/EU/Ring/Waist) ascending, then unknown labels
// lexicographically, with one-size labels always last.

var clothingRank = map[string]int{
	"XS":  0,
	"S":   1,
	"M":   2,
	"L":   3,
	"XL":  4,
	"XXL": 5,
}

var numericPrefixes = []string{"US", "EU", "Ring", "Waist"}

type sizeKey struct {
	tier int // 0 clothing, 1 numeric family, 2 unknown, 3 one-size
	rank int
	num  float64
	lex  string
}

func sizeSortKey(label string) sizeKey {
	trimmed := strings.TrimSpace(label)
	upper := strings.ToUpper(trimmed)

	if rank, ok := clothingRank[upper]; ok {
		return sizeKey{tier: 0, rank: rank}
	}

	for i, prefix := range numericPrefixes {
		rest, ok := strings.CutPrefix(upper, strings.ToUpper(prefix))
		if !ok {
			continue
		}
		rest = strings.TrimSpace(rest)
		if n, err := strconv.ParseFloat(rest, 64); err == nil {
			return sizeKey{tier: 1, rank: i, num: n}
		}
	}

	if upper == "ONE SIZE" || upper == "FREE SIZE" {
		return sizeKey{tier: 3, lex: upper}
	}

	return sizeKey{tier: 2, lex: trimmed}
}

// CompareSizeLabels orders two size labels canonically; negative means a
// displays before b.
func CompareSizeLabels(a, b string) int {
	ka, kb := sizeSortKey(a), sizeSortKey(b)
	if ka.tier != kb.tier {
		return ka.tier - kb.tier
	}
	if ka.rank != kb.rank {
		return ka.rank - kb.rank
	}
	if ka.num != kb.num {
		if ka.num < kb.num {
			return -1
		}
		return 1
	}
	return strings.Compare(ka.lex, kb.lex)
}

// SortSizeInfos sorts size projections into canonical display order.
func SortSizeInfos(infos []SizeInfo) {
	sort.SliceStable(infos, func(i, j int) bool {
		return CompareSizeLabels(infos[i].Size, infos[j].Size) < 0
	})
}
