package hex

import (
	"errors"
	"testing"
)

func TestColumnLettersBijective(t *testing.T) {
	cases := map[int]string{
		1:   "A",
		2:   "B",
		26:  "Z",
		27:  "AA",
		52:  "AZ",
		53:  "BA",
		702: "ZZ",
		703: "AAA",
	}
	for col, want := range cases {
		if got := ColumnLetters(col); got != want {
			t.Fatalf("expected column %d to be %q, got %q", col, want, got)
		}
	}
	for col := 1; col <= 26; col++ {
		want := string(rune('A' + col - 1))
		if got := FormatLabel(NewPosition(col, 1)); got != want+"1" {
			t.Fatalf("expected %s1, got %q", want, got)
		}
	}
}

func TestParseLabel(t *testing.T) {
	cases := []struct {
		in   string
		want Position
	}{
		{"A1", Position{1, 1}},
		{"a1", Position{1, 1}},
		{"Z9", Position{26, 9}},
		{"AA3", Position{27, 3}},
		{"az10", Position{52, 10}},
		{"BA0", Position{53, 0}},
		{" C4 ", Position{3, 4}},
	}
	for _, tc := range cases {
		got, err := ParseLabel(tc.in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("expected %q to parse as %+v, got %+v", tc.in, tc.want, got)
		}
	}
}

func TestParseLabelRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "1A", "A", "12", "A-1", "A1B", "#1", "Ä1"} {
		_, err := ParseLabel(in)
		if err == nil {
			t.Fatalf("expected error for %q, got nil", in)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Fatalf("expected *ParseError for %q, got %T", in, err)
		}
		if perr.Input != in {
			t.Fatalf("expected error to carry input %q, got %q", in, perr.Input)
		}
	}
}

func TestParseLabelColumnOverflow(t *testing.T) {
	if _, err := ParseLabel("ZZZZZZZZZZZZZZZZZZZZ1"); err == nil {
		t.Fatalf("expected overflow error, got nil")
	}
}

func TestLabelRoundTrip(t *testing.T) {
	for col := 1; col <= 2000; col += 7 {
		for _, row := range []int{0, 1, 9, 10, 123} {
			p := NewPosition(col, row)
			got, err := ParseLabel(FormatLabel(p))
			if err != nil {
				t.Fatalf("unexpected error for %+v: %v", p, err)
			}
			if got != p {
				t.Fatalf("expected round trip of %+v, got %+v", p, got)
			}
		}
	}
}

func TestUnlabelledColumn(t *testing.T) {
	for _, col := range []int{0, -1, -30} {
		p := NewPosition(col, 4)
		if FormatLabel(p) != "" || p.String() != "" {
			t.Fatalf("expected empty label for column %d", col)
		}
		if p.Labelled() {
			t.Fatalf("expected column %d to be unlabelled", col)
		}
	}
}

func TestAxialRoundTrip(t *testing.T) {
	for col := -5; col <= 5; col++ {
		for row := -5; row <= 5; row++ {
			p := NewPosition(col, row)
			if got := AxialToPosition(p.ToAxial()); got != p {
				t.Fatalf("expected %+v after axial round trip, got %+v", p, got)
			}
		}
	}
}
