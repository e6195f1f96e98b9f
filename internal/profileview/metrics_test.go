package profileview

import (
	"math"
	"testing"
)

func TestAttendancePercentage(t *testing.T) {
	cases := []struct {
		taken, total int
		want         float64
		text         string
		class        Classification
	}{
		{0, 10, 0, "0.00", AtRisk},
		{10, 10, 100, "100.00", Adequate},
		{7, 10, 70, "70.00", AtRisk},
		{9, 10, 90, "90.00", Adequate},
		{3, 4, 75, "75.00", Adequate},
		{1, 3, 33.33, "33.33", AtRisk},
		{2, 3, 66.67, "66.67", AtRisk},
		{1, 8, 12.5, "12.50", AtRisk},
		{1, 16, 6.25, "6.25", AtRisk},
		// 1/160 = 0.625%: the half rounds up.
		{1, 160, 0.63, "0.63", AtRisk},
		{299, 400, 74.75, "74.75", AtRisk},
		{2999, 4000, 74.98, "74.98", AtRisk},
	}

	for _, tc := range cases {
		p := AttendancePercentage(tc.taken, tc.total)
		got, ok := p.Value()
		if !ok {
			t.Fatalf("AttendancePercentage(%d, %d) is indeterminate", tc.taken, tc.total)
		}
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("AttendancePercentage(%d, %d) = %v, want %v", tc.taken, tc.total, got, tc.want)
		}
		if p.String() != tc.text {
			t.Errorf("AttendancePercentage(%d, %d).String() = %q, want %q", tc.taken, tc.total, p.String(), tc.text)
		}
		if c := Classify(p); c != tc.class {
			t.Errorf("Classify(%s) = %s, want %s", p, c, tc.class)
		}
	}
}

func TestAttendancePercentageZeroTotalIsIndeterminate(t *testing.T) {
	for _, taken := range []int{0, 1, 25, -3} {
		p := AttendancePercentage(taken, 0)
		if p.Determinate() {
			t.Fatalf("AttendancePercentage(%d, 0) should be indeterminate", taken)
		}
		if _, ok := p.Value(); ok {
			t.Errorf("AttendancePercentage(%d, 0).Value() returned a number", taken)
		}
		if c := Classify(p); c != Indeterminate {
			t.Errorf("Classify = %s, want %s", c, Indeterminate)
		}
		if p.String() != "n/a" {
			t.Errorf("String() = %q, want n/a", p.String())
		}
	}
}

func TestAttendancePercentageTakenAboveTotal(t *testing.T) {
	p := AttendancePercentage(12, 10)
	v, ok := p.Value()
	if !ok || v != 120 {
		t.Fatalf("got %v, %v; want 120, true", v, ok)
	}
	if Classify(p) != Adequate {
		t.Errorf("Classify = %s, want %s", Classify(p), Adequate)
	}
}

func TestFormatRating(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{4.5, "4.5"},
		{5, "5.0"},
		{0, "0.0"},
		{3.14, "3.1"},
		{4.26, "4.3"},
		// exact halves round up
		{0.25, "0.3"},
		{1.25, "1.3"},
		{4.25, "4.3"},
		{-0.25, "-0.3"},
		// stored just below the half
		{1.15, "1.1"},
		{1.45, "1.4"},
		// out of range passes through unclamped
		{7.25, "7.3"},
		{-1, "-1.0"},
	}
	for _, tc := range cases {
		if got := FormatRating(tc.in); got != tc.want {
			t.Errorf("FormatRating(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
