package util

import (
	"testing"
	"time"
)

func TestDayOf(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2023-06-15", time.Date(2023, 6, 15, 0, 0, 0, 0, time.Local)},
		{"20230615", time.Date(2023, 6, 15, 0, 0, 0, 0, time.Local)},
		{"2023-06-15 13:14:15", time.Date(2023, 6, 15, 0, 0, 0, 0, time.Local)},
		{" 2023-06-15 ", time.Date(2023, 6, 15, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := DayOf(tt.in)
		if err != nil {
			t.Errorf("DayOf(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("DayOf(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDayOfInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2023/06/15", "15-06-2023"} {
		if _, err := DayOf(in); err == nil {
			t.Errorf("DayOf(%q): expected error", in)
		}
	}
}

func TestStartEndOfDay(t *testing.T) {
	st, err := StartOfDay("2023-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	et, err := EndOfDay("2023-06-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if et-st != 24*3600 {
		t.Errorf("expected exactly one day between bounds, got %d", et-st)
	}

	// 空结束日取今天
	et, err = EndOfDay("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if now := time.Now().Unix(); et <= now || et > now+24*3600 {
		t.Errorf("expected end of today in the future, got %d", et)
	}
}

func TestStr2List(t *testing.T) {
	got := Str2List("a, b,,c ", ",")
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Errorf("unexpected list: %v", got)
	}
	if got := Str2List("", ","); len(got) != 0 {
		t.Errorf("expected empty list, got %v", got)
	}
}
