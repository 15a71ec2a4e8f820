package format

import "strconv"

var compactUnits = []string{"", "K", "M", "B", "T"}

// Compact formats n in English compact notation: 999, 1.2K, 12K, 100K,
// 1M, 2.5B. Values below ten units keep one decimal (dropped when zero);
// larger values round to a whole number. Rounding is half-up.
func Compact(n int64) string {
	if n < 0 {
		// Negate in uint64 so math.MinInt64 does not overflow.
		return "-" + compact(uint64(-(n+1))+1)
	}
	return compact(uint64(n))
}

func compact(n uint64) string {
	if n < 1000 {
		return strconv.FormatUint(n, 10)
	}

	unit, div := 0, uint64(1)
	for unit < len(compactUnits)-1 && n >= div*1000 {
		unit++
		div *= 1000
	}

	for {
		var s string
		if n < 10*div {
			tenths := (n*10 + div/2) / div
			if tenths >= 100 {
				s = "10"
			} else if tenths%10 == 0 {
				s = strconv.FormatUint(tenths/10, 10)
			} else {
				s = strconv.FormatUint(tenths/10, 10) + "." + strconv.FormatUint(tenths%10, 10)
			}
		} else {
			whole := (n + div/2) / div
			if whole >= 1000 && unit < len(compactUnits)-1 {
				unit++
				div *= 1000
				continue
			}
			s = strconv.FormatUint(whole, 10)
		}
		return s + compactUnits[unit]
	}
}
