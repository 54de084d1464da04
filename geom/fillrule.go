package geom

// FillRule selects the interior test for filled outlines.
type FillRule uint8

const (
	// NonZero fills points with a non-zero winding number.
	NonZero FillRule = iota
	// EvenOdd fills points crossed an odd number of times.
	EvenOdd

	// Winding is the name PDF renderers commonly use for NonZero.
	Winding = NonZero
)

// String returns the rule name.
func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "NonZero"
	case EvenOdd:
		return "EvenOdd"
	default:
		return "Unknown"
	}
}
