package bitmap

import (
	"math/rand"
	"testing"

	"github.com/temirov/qrclip/internal/symbol"
)

func TestDecodeFlipsRowsAndMapsColors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		width  int
		height int
		seed   int64
	}{
		{name: "single_module", width: 1, height: 1, seed: 1},
		{name: "square", width: 5, height: 5, seed: 2},
		{name: "rectangular", width: 7, height: 3, seed: 3},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			generator := rand.New(rand.NewSource(testCase.seed))
			modules := make([]bool, testCase.width*testCase.height)
			for index := range modules {
				modules[index] = generator.Intn(2) == 0
			}
			matrix, err := symbol.NewMatrix(testCase.width, testCase.height, modules)
			if err != nil {
				t.Fatalf("NewMatrix error: %v", err)
			}
			buffer := Decode(matrix)
			if buffer.Width != matrix.Width() || buffer.Height != matrix.Height() {
				t.Fatalf("expected %dx%d buffer, got %dx%d", matrix.Width(), matrix.Height(), buffer.Width, buffer.Height)
			}
			for y := 0; y < buffer.Height; y++ {
				for x := 0; x < buffer.Width; x++ {
					expected := Black
					if matrix.Light(x, buffer.Height-1-y) {
						expected = White
					}
					if buffer.At(x, y) != expected {
						t.Fatalf("pixel (%d,%d): expected %d, got %d", x, y, expected, buffer.At(x, y))
					}
				}
			}
		})
	}
}

func TestDecodeQRSymbolTopRowMatchesMatrixTopRow(t *testing.T) {
	matrix, err := symbol.NewQREncoder().Encode("HELLO")
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	buffer := Decode(matrix)
	size := matrix.Width()
	if buffer.Width != size || buffer.Height != size {
		t.Fatalf("expected %dx%d buffer, got %dx%d", size, size, buffer.Width, buffer.Height)
	}
	for x := 0; x < size; x++ {
		if (buffer.At(x, 0) == White) != matrix.Light(x, size-1) {
			t.Fatalf("top pixel row differs from matrix top row at column %d", x)
		}
		if (buffer.At(x, size-1) == White) != matrix.Light(x, 0) {
			t.Fatalf("bottom pixel row differs from matrix bottom row at column %d", x)
		}
	}
}

func TestPixelBufferRGBA(t *testing.T) {
	buffer := PixelBuffer{Width: 2, Height: 1, Pixels: []Color{White, Black}}
	if buffer.Empty() {
		t.Fatalf("buffer should not be empty")
	}
	rgbaImage := buffer.RGBA()
	if rgbaImage.Bounds().Dx() != 2 || rgbaImage.Bounds().Dy() != 1 {
		t.Fatalf("unexpected bounds %v", rgbaImage.Bounds())
	}
	if white := rgbaImage.RGBAAt(0, 0); white.R != 0xff || white.A != 0xff {
		t.Fatalf("expected opaque white, got %v", white)
	}
	if black := rgbaImage.RGBAAt(1, 0); black.R != 0 || black.A != 0xff {
		t.Fatalf("expected opaque black, got %v", black)
	}
}

func TestPixelBufferEmpty(t *testing.T) {
	if !(PixelBuffer{}).Empty() {
		t.Fatalf("zero buffer should be empty")
	}
	if !(PixelBuffer{Width: 2, Height: 2, Pixels: []Color{White}}).Empty() {
		t.Fatalf("mismatched buffer should be empty")
	}
}
