package fiscal

import (
	"errors"
	"testing"
	"time"
)

func TestMonthKey_Boundary(t *testing.T) {
	t.Parallel()

	cases := []struct {
		date string
		want string
	}{
		{"2024-05-22", "2024-05"}, // 22 日是当月最后一天
		{"2024-05-23", "2024-06"}, // 23 日起归入下月
		{"2024-05-01", "2024-05"},
		{"2024-12-22", "2024-12"},
		{"2024-12-23", "2025-01"}, // 跨年
		{"2024-12-31", "2025-01"},
		{"2024-01-22", "2024-01"},
		{"2024-01-23", "2024-02"},
	}

	for _, c := range cases {
		d, err := time.Parse("2006-01-02", c.date)
		if err != nil {
			t.Fatalf("parse %s: %v", c.date, err)
		}
		if got := MonthKey(d); got != c.want {
			t.Fatalf("MonthKey(%s) = %s, want %s", c.date, got, c.want)
		}
	}
}

func TestMonthKey_IgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	d1 := time.Date(2024, 5, 23, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 5, 23, 23, 59, 59, 0, time.UTC)
	if MonthKey(d1) != MonthKey(d2) {
		t.Fatalf("time of day changed fiscal month: %s vs %s", MonthKey(d1), MonthKey(d2))
	}
}

func TestMonthKeyOfDate(t *testing.T) {
	t.Parallel()

	got, err := MonthKeyOfDate("2024-04-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "2024-04" {
		t.Fatalf("got %s, want 2024-04", got)
	}

	if _, err := MonthKeyOfDate("not a date"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate, got %v", err)
	}
	if _, err := MonthKeyOfDate(""); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("want ErrInvalidDate for empty input, got %v", err)
	}
}

func TestParseDateCell_Formats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2024-04-05", "2024-04-05"},
		{"2024/4/5", "2024-04-05"},
		{"2024年4月5日", "2024-04-05"},
		{"04-05-24", "2024-04-05"}, // excelize 默认日期格式 m-d-yy
		{"45387", "2024-04-05"},    // Excel 序列值
	}

	for _, c := range cases {
		got, err := ParseDateCell(c.in)
		if err != nil {
			t.Fatalf("ParseDateCell(%q): %v", c.in, err)
		}
		if got.Format("2006-01-02") != c.want {
			t.Fatalf("ParseDateCell(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func TestPrevMonthKey(t *testing.T) {
	t.Parallel()

	if got := PrevMonthKey("2024-05"); got != "2024-04" {
		t.Fatalf("got %s", got)
	}
	if got := PrevMonthKey("2024-01"); got != "2023-12" {
		t.Fatalf("got %s", got)
	}
}

func TestMonthKeys(t *testing.T) {
	t.Parallel()

	keys := MonthKeys(2024)
	if len(keys) != 12 {
		t.Fatalf("got %d keys", len(keys))
	}
	if keys[0] != "2024-01" || keys[11] != "2024-12" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
