package order

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrMalformedPrice means the catalog display price contained no digits.
	// Trusted catalog data should never trigger this; it signals a data defect
	// to be logged, not surfaced to customers.
	ErrMalformedPrice = errors.New("malformed display price")
	ErrUnknownTier    = errors.New("unknown urgency tier")
)

// UrgencyTier is the customer-selected expedite level multiplying the base
// price.
type UrgencyTier string

const (
	TierStandard UrgencyTier = "standard"
	TierUrgent   UrgencyTier = "urgent"
	TierExpress  UrgencyTier = "express"
)

func ParseTier(s string) (UrgencyTier, error) {
	switch UrgencyTier(s) {
	case TierStandard, TierUrgent, TierExpress:
		return UrgencyTier(s), nil
	}
	return "", ErrUnknownTier
}

func (t UrgencyTier) String() string {
	return string(t)
}

// Multiplier returns the price multiplier for the tier. Unknown tiers fail
// loudly rather than defaulting to standard.
func (t UrgencyTier) Multiplier() (float64, error) {
	switch t {
	case TierStandard:
		return 1.0, nil
	case TierUrgent:
		return 1.5, nil
	case TierExpress:
		return 2.0, nil
	}
	return 0, ErrUnknownTier
}

// ExtractBaseAmount pulls the whole-unit amount out of a catalog display
// price such as "₦150,000" or "$2,000" by dropping every non-digit rune.
func ExtractBaseAmount(display string) (int64, error) {
	var sb strings.Builder
	for _, r := range display {
		if unicode.IsDigit(r) && r < unicode.MaxASCII {
			sb.WriteRune(r)
		}
	}
	digits := sb.String()
	if digits == "" {
		return 0, ErrMalformedPrice
	}

	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, ErrMalformedPrice
	}
	return amount, nil
}

// ComputeFinalAmount is the pricing engine: a pure function of the display
// price and the urgency tier, in whole currency units. Scaling to the
// gateway's minor units happens at the gateway adapter, never here.
func ComputeFinalAmount(display string, tier UrgencyTier) (int64, error) {
	base, err := ExtractBaseAmount(display)
	if err != nil {
		return 0, err
	}

	mult, err := tier.Multiplier()
	if err != nil {
		return 0, err
	}

	// round half up
	return int64(math.Floor(float64(base)*mult + 0.5)), nil
}
