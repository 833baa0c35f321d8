package board

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		label string
		want  Color
	}{
		{"a1", Dark},
		{"h1", Light},
		{"e4", Light},
		{"a8", Light},
		{"h8", Dark},
		{"d4", Dark},
		{"d5", Light},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			sq, err := ParseSquare(tt.label)
			if err != nil {
				t.Fatalf("ParseSquare(%q): %v", tt.label, err)
			}
			if got := Classify(sq); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.label, got, tt.want)
			}
		})
	}
}

func TestClassifyParity(t *testing.T) {
	for f := 0; f < 8; f++ {
		for r := 0; r < 8; r++ {
			want := Dark
			if (f+r)%2 == 1 {
				want = Light
			}
			if got := Classify(Square{File: f, Rank: r}); got != want {
				t.Errorf("Classify(%d,%d) = %s, want %s", f, r, got, want)
			}
		}
	}
}

func TestRandomSquareInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	seen := make(map[string]bool)

	for i := 0; i < 10000; i++ {
		sq := RandomSquare(rng)
		if sq.File < 0 || sq.File > 7 || sq.Rank < 0 || sq.Rank > 7 {
			t.Fatalf("square out of range: %+v", sq)
		}
		label := sq.String()
		if _, err := ParseSquare(label); err != nil {
			t.Fatalf("generated invalid label %q", label)
		}
		seen[label] = true
	}

	if len(seen) != 64 {
		t.Errorf("saw %d distinct squares in 10000 draws, want 64", len(seen))
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in      string
		want    Square
		wantErr bool
	}{
		{in: "a1", want: Square{0, 0}},
		{in: "H8", want: Square{7, 7}},
		{in: " e4 ", want: Square{4, 3}},
		{in: "i1", wantErr: true},
		{in: "a9", wantErr: true},
		{in: "a0", wantErr: true},
		{in: "", wantErr: true},
		{in: "e44", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSquare(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSquare) {
					t.Fatalf("err = %v, want ErrInvalidSquare", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "light", want: Light},
		{in: "Dark", want: Dark},
		{in: "white", want: Light},
		{in: "black", want: Dark},
		{in: "grey", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColor) {
					t.Fatalf("err = %v, want ErrInvalidColor", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}
