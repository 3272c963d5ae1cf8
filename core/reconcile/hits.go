package reconcile

import (
	"sort"
)

const (
	// MinNumber and MaxNumber bound every selectable and drawn number.
	MinNumber = 1
	MaxNumber = 60

	// MinSelection and MaxSelection bound how many numbers a bet may select.
	MinSelection = 6
	MaxSelection = 15

	// DrawSize is how many numbers each draw produces.
	DrawSize = 6

	// MaxRepeat caps how many consecutive draws a single bet may cover.
	MaxRepeat = 12
)

// Hit is the evaluation of a selection against a draw.
type Hit struct {
	Count int
	Tier  PrizeTier
}

// TierFor maps a hit count to its prize tier.
func TierFor(hits int) PrizeTier {
	switch {
	case hits >= 6:
		return TierSena
	case hits == 5:
		return TierQuina
	case hits == 4:
		return TierQuadra
	default:
		return TierNone
	}
}

// CountHits returns |selected ∩ drawn|. Inputs are not validated.
func CountHits(selected, drawn []int) int {
	index := make(map[int]struct{}, len(drawn))
	for _, n := range drawn {
		index[n] = struct{}{}
	}
	hits := 0
	for _, n := range selected {
		if _, ok := index[n]; ok {
			hits++
		}
	}
	return hits
}

// Evaluate validates both sets and returns the hit count and prize tier.
func Evaluate(selected, drawn []int) (Hit, error) {
	if err := ValidateSelection(selected); err != nil {
		return Hit{}, err
	}
	if err := ValidateDrawnNumbers(drawn); err != nil {
		return Hit{}, err
	}
	hits := CountHits(selected, drawn)
	return Hit{Count: hits, Tier: TierFor(hits)}, nil
}

// ValidateSelection checks a bet's numbers: 6 to 15 unique values in [1,60].
func ValidateSelection(numbers []int) error {
	if len(numbers) < MinSelection || len(numbers) > MaxSelection {
		return invalid("numbers", "select between %d and %d numbers, got %d", MinSelection, MaxSelection, len(numbers))
	}
	return validateSet("numbers", numbers)
}

// ValidateDrawnNumbers checks a draw's numbers: exactly 6 unique values in [1,60].
func ValidateDrawnNumbers(numbers []int) error {
	if len(numbers) != DrawSize {
		return invalid("drawn_numbers", "expected %d numbers, got %d", DrawSize, len(numbers))
	}
	return validateSet("drawn_numbers", numbers)
}

func validateSet(field string, numbers []int) error {
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < MinNumber || n > MaxNumber {
			return invalid(field, "%d is outside [%d,%d]", n, MinNumber, MaxNumber)
		}
		if _, dup := seen[n]; dup {
			return invalid(field, "%d appears more than once", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

// ValidateBet checks a bet before it is stored.
func ValidateBet(b *Bet) error {
	if err := ValidateSelection(b.Numbers); err != nil {
		return err
	}
	if b.StartDraw <= 0 {
		return invalid("start_draw", "must be positive, got %d", b.StartDraw)
	}
	if b.Repeat < 1 || b.Repeat > MaxRepeat {
		return invalid("repeat", "must be between 1 and %d, got %d", MaxRepeat, b.Repeat)
	}
	return nil
}

// ValidateDraw checks a provider result before it is cached.
func ValidateDraw(d *DrawResult) error {
	if d == nil {
		return invalid("draw", "missing result")
	}
	if d.Number <= 0 {
		return invalid("draw_number", "must be positive, got %d", d.Number)
	}
	return ValidateDrawnNumbers(d.Numbers)
}

// SortedCopy returns an ascending copy of numbers.
func SortedCopy(numbers []int) []int {
	out := append([]int(nil), numbers...)
	sort.Ints(out)
	return out
}
