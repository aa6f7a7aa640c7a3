package domain

import "testing"

func TestBracketFor(t *testing.T) {
	cases := []struct {
		score float64
		want  ScoreBracket
	}{
		{5.99, BracketNone},
		{6.0, Bracket6To7},
		{6.95, Bracket6To7},
		{7.0, Bracket7To8},
		{8.0, Bracket8To9},
		{8.99, Bracket8To9},
		{9.0, Bracket9Plus},
		{12.5, Bracket9Plus},
		{0, BracketNone},
	}

	for _, tc := range cases {
		if got := BracketFor(tc.score); got != tc.want {
			t.Errorf("BracketFor(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestBrackets_Ascending(t *testing.T) {
	want := []ScoreBracket{Bracket6To7, Bracket7To8, Bracket8To9, Bracket9Plus}
	got := Brackets()
	if len(got) != len(want) {
		t.Fatalf("got %d brackets, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bracket %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
