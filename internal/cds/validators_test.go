package cds

import "testing"

func TestValidTimeFormat(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"09:00", true},
		{"00:00", true},
		{"23:59", true},
		{"9:00", false},
		{"25:00", false},
		{"12:60", false},
		{"12:5", false},
		{"1200", false},
		{"ab:cd", false},
		{"", false},
		{"12:345", false},
	}
	for _, tc := range cases {
		if got := ValidTimeFormat(tc.in); got != tc.want {
			t.Errorf("ValidTimeFormat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestValidDays(t *testing.T) {
	t.Run("abbreviated names", func(t *testing.T) {
		if !ValidDays([]string{"MON", "TUE"}) {
			t.Error("expected MON, TUE to be valid")
		}
	})

	t.Run("full names mixed case", func(t *testing.T) {
		if !ValidDays([]string{"Monday", "saturday", "SUNDAY"}) {
			t.Error("expected full day names to be valid")
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		if ValidDays([]string{"MON", "INVALID"}) {
			t.Error("expected INVALID to fail validation")
		}
	})

	t.Run("empty list", func(t *testing.T) {
		if !ValidDays(nil) {
			t.Error("expected empty list to be vacuously valid")
		}
	})
}

func TestValidTimeSpan(t *testing.T) {
	t.Run("valid span", func(t *testing.T) {
		span := &TimeSpan{
			DaysOfWeek:     []string{"mon", "fri"},
			TimeOfDayStart: "09:00",
			TimeOfDayEnd:   "17:00",
		}
		if !ValidTimeSpan(span) {
			t.Error("expected span to be valid")
		}
	})

	t.Run("start after end", func(t *testing.T) {
		span := &TimeSpan{
			DaysOfWeek:     []string{"mon"},
			TimeOfDayStart: "17:00",
			TimeOfDayEnd:   "09:00",
		}
		if ValidTimeSpan(span) {
			t.Error("expected reversed span to be invalid")
		}
	})

	t.Run("overnight span is invalid", func(t *testing.T) {
		// Same-day semantics only: a legitimate 22:00-02:00 window still fails.
		span := &TimeSpan{
			DaysOfWeek:     []string{"fri", "sat"},
			TimeOfDayStart: "22:00",
			TimeOfDayEnd:   "02:00",
		}
		if ValidTimeSpan(span) {
			t.Error("expected overnight span to be invalid")
		}
	})

	t.Run("malformed time", func(t *testing.T) {
		span := &TimeSpan{
			DaysOfWeek:     []string{"mon"},
			TimeOfDayStart: "9:00",
			TimeOfDayEnd:   "17:00",
		}
		if ValidTimeSpan(span) {
			t.Error("expected malformed start time to be invalid")
		}
	})

	t.Run("nil span", func(t *testing.T) {
		if ValidTimeSpan(nil) {
			t.Error("expected nil span to be invalid")
		}
	})
}

func TestValidDuration(t *testing.T) {
	if !ValidDuration(120) {
		t.Error("expected 120 to be valid")
	}
	if ValidDuration(0) {
		t.Error("expected 0 to be invalid")
	}
	if ValidDuration(-30) {
		t.Error("expected -30 to be invalid")
	}
}

func TestValidLocation(t *testing.T) {
	t.Run("valid coordinates", func(t *testing.T) {
		loc := &Location{Type: "Point", Coordinates: []float64{-73.9857, 40.7484}}
		if !ValidLocation(loc) {
			t.Error("expected location to be valid")
		}
	})

	t.Run("out of bounds", func(t *testing.T) {
		loc := &Location{Type: "Point", Coordinates: []float64{-200, 100}}
		if ValidLocation(loc) {
			t.Error("expected out-of-bounds location to be invalid")
		}
	})

	t.Run("boundary values", func(t *testing.T) {
		loc := &Location{Type: "Point", Coordinates: []float64{180, -90}}
		if !ValidLocation(loc) {
			t.Error("expected boundary coordinates to be valid")
		}
	})

	t.Run("wrong arity", func(t *testing.T) {
		if ValidLocation(&Location{Type: "Point", Coordinates: []float64{12.5}}) {
			t.Error("expected single coordinate to be invalid")
		}
		if ValidLocation(&Location{Type: "Point"}) {
			t.Error("expected empty coordinates to be invalid")
		}
		if ValidLocation(nil) {
			t.Error("expected nil location to be invalid")
		}
	})
}

func TestValidRate(t *testing.T) {
	t.Run("valid rate", func(t *testing.T) {
		rate := &Rate{Rate: 2.5, RateUnit: "hour", RateUnitPeriod: Rolling}
		if !ValidRate(rate) {
			t.Error("expected rate to be valid")
		}
	})

	t.Run("unit vocabulary is case-insensitive", func(t *testing.T) {
		rate := &Rate{Rate: 1, RateUnit: "Hour", RateUnitPeriod: Calendar}
		if !ValidRate(rate) {
			t.Error("expected Hour to be accepted case-insensitively")
		}
	})

	t.Run("unknown unit", func(t *testing.T) {
		rate := &Rate{Rate: 1, RateUnit: "fortnight", RateUnitPeriod: Rolling}
		if ValidRate(rate) {
			t.Error("expected unknown unit to be invalid")
		}
	})

	t.Run("negative amount", func(t *testing.T) {
		rate := &Rate{Rate: -1, RateUnit: "hour", RateUnitPeriod: Rolling}
		if ValidRate(rate) {
			t.Error("expected negative rate to be invalid")
		}
	})

	t.Run("unknown period", func(t *testing.T) {
		rate := &Rate{Rate: 1, RateUnit: "hour", RateUnitPeriod: "weekly"}
		if ValidRate(rate) {
			t.Error("expected unknown period to be invalid")
		}
	})
}
