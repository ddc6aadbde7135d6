package resolve

import (
	"fmt"
	"strings"
)

// Boost selects the one stage whose engine constant is multiplied by
// BoostFactor.
type Boost int

const (
	BoostNone Boost = iota
	BoostA
	BoostB
	BoostC
	BoostD
)

var boostTokens = map[string]Boost{
	"a": BoostA,
	"b": BoostB,
	"c": BoostC,
	"d": BoostD,
	"n": BoostNone,
}

func (b Boost) String() string {
	switch b {
	case BoostA:
		return "A"
	case BoostB:
		return "B"
	case BoostC:
		return "C"
	case BoostD:
		return "D"
	default:
		return "none"
	}
}

// Stage returns the zero-based stage index the boost applies to.
func (b Boost) Stage() (int, bool) {
	if b < BoostA || b > BoostD {
		return 0, false
	}
	return int(b - BoostA), true
}

// ParseBoost maps a prompt answer (A, B, C, D or N, any case) to a Boost.
// ok is false for anything else, in which case no boost applies.
func ParseBoost(token string) (b Boost, ok bool) {
	b, ok = boostTokens[strings.ToLower(strings.TrimSpace(token))]
	if !ok {
		return BoostNone, false
	}
	return b, true
}

func (b Boost) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(b.String())), nil
}

// UnmarshalText accepts the prompt letters plus "none" and "". Config files
// are validated strictly.
func (b *Boost) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	if s == "" || s == "none" {
		*b = BoostNone
		return nil
	}
	parsed, ok := ParseBoost(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidBoost, s)
	}
	*b = parsed
	return nil
}
