package keypad

import "fmt"

const (
	// GridSize is the number of rows and columns.
	GridSize = 4
	// NumKeys is the number of keys on the pad.
	NumKeys = GridSize * GridSize
)

// Index returns the row-major index of the key at (x, y).
func Index(x, y int) int {
	return x*GridSize + y
}

// Coordinates returns the (x, y) position of index.
func Coordinates(index int) (x, y int) {
	return index / GridSize, index % GridSize
}

// CheckCoordinates reports an error if (x, y) is off the grid.
func CheckCoordinates(x, y int) error {
	if x < 0 || x >= GridSize || y < 0 || y >= GridSize {
		return fmt.Errorf("coordinates (%d,%d): %w", x, y, ErrOutOfRange)
	}
	return nil
}
