package query

import (
	"regexp"
	"strconv"
	"strings"
)

// UnknownPlacement is the sentinel tier for ranks the parser does not
// recognise. Unknown always sorts below any real placement.
const UnknownPlacement = 999

var (
	topNPattern    = regexp.MustCompile(`top\s*(\d+)`)
	ordinalPattern = regexp.MustCompile(`^(\d+)(?:st|nd|rd|th)?$`)
)

// PlacementTier maps a free-text tournament placement to a comparable tier.
// "1st" and "Champion" are 1, "Top 8" is 8, "17th" is 17. The mapping is
// total: anything unrecognised maps to UnknownPlacement, never an error.
func PlacementTier(rank string) int {
	r := strings.ToLower(strings.TrimSpace(rank))
	if r == "" || r == "-" {
		return UnknownPlacement
	}

	switch {
	case strings.Contains(r, "champion"), strings.Contains(r, "winner"), r == "1st", r == "1":
		return 1
	case strings.Contains(r, "runner"), strings.Contains(r, "finalist"), r == "2nd", r == "2":
		return 2
	}

	if m := topNPattern.FindStringSubmatch(r); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			switch {
			case n <= 2:
				return 2
			case n <= 4:
				return 4
			case n <= 8:
				return 8
			case n <= 16:
				return 16
			case n <= 32:
				return 32
			case n <= 64:
				return 64
			default:
				return n
			}
		}
	}

	if m := ordinalPattern.FindStringSubmatch(r); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			return n
		}
	}

	return UnknownPlacement
}
