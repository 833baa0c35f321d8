// Package board defines chessboard squares and their colors.
// It has zero external dependencies.
package board

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrInvalidColor  = errors.New("invalid color")
)

const (
	files = "abcdefgh"
	ranks = "12345678"
)

// Square is a single board square. File and Rank are 0-based (a1 = {0, 0}).
type Square struct {
	File int
	Rank int
}

func (s Square) String() string {
	return string([]byte{files[s.File], ranks[s.Rank]})
}

// ParseSquare parses an algebraic label such as "e4".
func ParseSquare(label string) (Square, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if len(label) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, label)
	}
	f := strings.IndexByte(files, label[0])
	r := strings.IndexByte(ranks, label[1])
	if f < 0 || r < 0 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidSquare, label)
	}
	return Square{File: f, Rank: r}, nil
}

// RandomSquare draws uniformly from the 64 squares. Draws are independent,
// so the same square may come up twice in a row.
func RandomSquare(r *rand.Rand) Square {
	n := r.IntN(64)
	return Square{File: n % 8, Rank: n / 8}
}

type Color int

const (
	Dark Color = iota
	Light
)

func (c Color) String() string {
	if c == Light {
		return "light"
	}
	return "dark"
}

// ParseColor accepts "light"/"dark" and the piece-color synonyms
// "white"/"black".
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light", "white":
		return Light, nil
	case "dark", "black":
		return Dark, nil
	}
	return Dark, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	v, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Classify returns the color of sq. a1 is dark.
func Classify(sq Square) Color {
	if (sq.File+sq.Rank)%2 == 1 {
		return Light
	}
	return Dark
}
