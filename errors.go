package boggle

import "errors"

var (
	// ErrInvalidDimension is returned when a board side length is not a
	// positive integer.
	ErrInvalidDimension = errors.New("invalid board dimension")

	// ErrLetterCountMismatch is returned when the number of letters does not
	// equal the square of the board width.
	ErrLetterCountMismatch = errors.New("letter count does not match board size")

	// ErrInvalidLetter is returned when a board entry is empty, longer than one
	// character, or not an ASCII letter.
	ErrInvalidLetter = errors.New("invalid letter")
)

// IsInputError reports whether err was caused by a malformed board.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidDimension) ||
		errors.Is(err, ErrLetterCountMismatch) ||
		errors.Is(err, ErrInvalidLetter)
}
