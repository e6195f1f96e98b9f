package profileview

import (
	"math"
	"strconv"
)

type Classification string

const (
	AtRisk        Classification = "at_risk"
	Adequate      Classification = "adequate"
	Indeterminate Classification = "indeterminate"
)

// AtRiskThreshold is the attendance percentage below which a course is AtRisk.
const AtRiskThreshold = 75

const atRiskHundredths = AtRiskThreshold * 100

// Percentage is an attendance percentage held in hundredths, so 70.00 is 7000.
// The zero value is indeterminate.
type Percentage struct {
	hundredths  int64
	determinate bool
}

// AttendancePercentage returns taken/total*100 rounded half-up to two decimals.
// A zero total yields an indeterminate percentage instead of NaN or Inf.
func AttendancePercentage(classesTaken, totalClasses int) Percentage {
	if totalClasses == 0 {
		return Percentage{}
	}
	return Percentage{
		hundredths:  roundHalfUp(int64(classesTaken)*10000, int64(totalClasses)),
		determinate: true,
	}
}

// roundHalfUp divides num by den rounding halves away from zero.
func roundHalfUp(num, den int64) int64 {
	neg := (num < 0) != (den < 0)
	if num < 0 {
		num = -num
	}
	if den < 0 {
		den = -den
	}
	q := (2*num + den) / (2 * den)
	if neg {
		return -q
	}
	return q
}

func (p Percentage) Determinate() bool {
	return p.determinate
}

// Value returns the percentage and false when it is indeterminate.
func (p Percentage) Value() (float64, bool) {
	if !p.determinate {
		return 0, false
	}
	return float64(p.hundredths) / 100, true
}

// String formats with exactly two decimals, "70.00". Indeterminate prints as "n/a".
func (p Percentage) String() string {
	v, ok := p.Value()
	if !ok {
		return "n/a"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func Classify(p Percentage) Classification {
	if !p.determinate {
		return Indeterminate
	}
	if p.hundredths < atRiskHundredths {
		return AtRisk
	}
	return Adequate
}

// FormatRating prints exactly one decimal place, rounding halves away from zero
// (4.25 is "4.3"). Values outside [0,5] are not clamped.
func FormatRating(value float64) string {
	return strconv.FormatFloat(roundTenths(value), 'f', 1, 64)
}

// roundTenths rounds to one decimal, halves away from zero, on the exact binary
// value: 1.15 is stored just below the tie and stays 1.1.
func roundTenths(v float64) float64 {
	t := v * 10
	r := math.Round(t)
	if math.Abs(t-math.Trunc(t)) == 0.5 {
		// the product may have rounded onto the tie
		if e := math.FMA(v, 10, -t); e != 0 && (e > 0) != (t > 0) {
			r = math.Trunc(t)
		}
	}
	return r / 10
}
