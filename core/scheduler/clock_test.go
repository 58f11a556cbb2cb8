package scheduler

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := map[string]int{"08:00": 480, "8:05": 485, "00:00": 0, "23:59": 1439, " 13:30 ": 810}
	for in, want := range cases {
		got, err := ParseClock(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d got %d", in, want, got)
		}
	}
	for _, bad := range []string{"", "8", "24:00", "12:60", "12:5", "ab:cd", "-1:00", "123:00"} {
		if _, err := ParseClock(bad); !errors.Is(err, ErrInvalidClock) {
			t.Fatalf("%q: expected ErrInvalidClock got %v", bad, err)
		}
	}
}

func TestFormatClock(t *testing.T) {
	if got := FormatClock(485); got != "08:05" {
		t.Fatalf("got %s", got)
	}
	if got := FormatClock(24*60 + 35); got != "24:35" {
		t.Fatalf("virtual hour not kept: %s", got)
	}
}
