package schema

import "fmt"

// Rating is a 3-point calibration scale for performance and potential.
type Rating string

// Rating values.
const (
	RatingLow    Rating = "low"
	RatingMedium Rating = "medium"
	RatingHigh   Rating = "high"
)

// AllRatings lists every valid rating in ascending order.
var AllRatings = []Rating{RatingLow, RatingMedium, RatingHigh}

// ParseRating converts user input into a Rating.
// Accepts the canonical values plus common roster spellings (case-insensitive
// handling is the caller's job; roster import lowercases before parsing).
func ParseRating(s string) (Rating, error) {
	switch s {
	case "low", "l":
		return RatingLow, nil
	case "medium", "med", "m":
		return RatingMedium, nil
	case "high", "h":
		return RatingHigh, nil
	default:
		return "", fmt.Errorf("invalid rating %q: must be low, medium, or high", s)
	}
}

// ordinal maps a rating to 1..3.
func (r Rating) ordinal() int {
	switch r {
	case RatingLow:
		return 1
	case RatingMedium:
		return 2
	case RatingHigh:
		return 3
	default:
		return 0
	}
}

// Valid reports whether the rating is one of the three defined values.
func (r Rating) Valid() bool {
	return r.ordinal() != 0
}

// GridPosition computes the 1-9 grid cell for a performance/potential pair.
// Performance selects the column (low=1, medium=2, high=3) and potential the
// row offset (low=0, medium=3, high=6), so (low,low)=1 and (high,high)=9.
// Returns 0 for invalid ratings.
func GridPosition(performance, potential Rating) int {
	col := performance.ordinal()
	row := potential.ordinal()
	if col == 0 || row == 0 {
		return 0
	}
	return (row-1)*3 + col
}

// GridCell decodes a 1-9 grid position back into its performance and
// potential ratings. It is the inverse of GridPosition over valid pairs.
func GridCell(pos int) (performance, potential Rating, err error) {
	if pos < 1 || pos > 9 {
		return "", "", fmt.Errorf("invalid grid position %d: must be 1-9", pos)
	}
	ratings := AllRatings
	return ratings[(pos-1)%3], ratings[(pos-1)/3], nil
}

// GridCellLabel returns the conventional 9-box label for a grid position.
func GridCellLabel(pos int) string {
	labels := map[int]string{
		1: "Underperformer",
		2: "Effective Specialist",
		3: "Trusted Professional",
		4: "Inconsistent Player",
		5: "Core Player",
		6: "High Performer",
		7: "Rough Diamond",
		8: "Emerging Star",
		9: "Star",
	}
	return labels[pos]
}
