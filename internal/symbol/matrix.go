// Package symbol converts text into monochrome QR module matrices.
package symbol

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates that a matrix size does not match its module data.
var ErrInvalidDimensions = errors.New("invalid matrix dimensions")

const invalidDimensionsFormat = "%w: %dx%d with %d modules"

// Matrix is a grid of QR modules addressed from the bottom-left corner.
// Row zero is the bottom row and rows are stored one after another.
type Matrix struct {
	width   int
	height  int
	modules []bool
}

// NewMatrix builds a matrix from bottom-up, row-major module values where true marks a light module.
func NewMatrix(width int, height int, modules []bool) (Matrix, error) {
	if width <= 0 || height <= 0 || len(modules) != width*height {
		return Matrix{}, fmt.Errorf(invalidDimensionsFormat, ErrInvalidDimensions, width, height, len(modules))
	}
	copied := make([]bool, len(modules))
	copy(copied, modules)
	return Matrix{width: width, height: height, modules: copied}, nil
}

// Width returns the number of module columns.
func (matrix Matrix) Width() int {
	return matrix.width
}

// Height returns the number of module rows.
func (matrix Matrix) Height() int {
	return matrix.height
}

// Light reports whether the module at column x and row y, counted from the bottom, is light.
// Coordinates outside the matrix read as light, matching the quiet zone.
func (matrix Matrix) Light(x int, y int) bool {
	if x < 0 || y < 0 || x >= matrix.width || y >= matrix.height {
		return true
	}
	return matrix.modules[y*matrix.width+x]
}
