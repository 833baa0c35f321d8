package drill

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMode = errors.New("invalid mode")

type Mode int

const (
	Timed Mode = iota
	Free
)

func (m Mode) String() string {
	if m == Free {
		return "free"
	}
	return "timed"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "timed":
		return Timed, nil
	case "free":
		return Free, nil
	}
	return Timed, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Limit is a question count that is either a concrete number or unbounded.
// Free sessions use Unbounded for both the total and the remaining count.
type Limit struct {
	n       int
	bounded bool
}

func Bounded(n int) Limit { return Limit{n: n, bounded: true} }

func Unbounded() Limit { return Limit{} }

// Value returns the count and whether the limit is bounded.
func (l Limit) Value() (int, bool) { return l.n, l.bounded }

func (l Limit) IsBounded() bool { return l.bounded }

func (l Limit) String() string {
	if !l.bounded {
		return "∞"
	}
	return fmt.Sprint(l.n)
}

// MarshalJSON encodes a bounded limit as a number and Unbounded as null.
func (l Limit) MarshalJSON() ([]byte, error) {
	if !l.bounded {
		return []byte("null"), nil
	}
	return json.Marshal(l.n)
}

func (l *Limit) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*l = Unbounded()
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*l = Bounded(n)
	return nil
}
