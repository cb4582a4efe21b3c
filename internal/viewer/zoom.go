package viewer

import (
	"errors"
	"fmt"
	"math"
)

const (
	defaultInitialZoom = 2.0
	defaultMinimumZoom = 0.5
	defaultMaximumZoom = 5.0
	defaultZoomSpeed   = 0.1
	defaultStepMinimum = 0.5
	defaultStepMaximum = 5.0

	invalidZoomFormat = "%w: %s"
)

// ErrInvalidZoomConfiguration indicates zoom bounds or speed that cannot produce a usable scale.
var ErrInvalidZoomConfiguration = errors.New("invalid zoom configuration")

// ZoomConfiguration bounds the scale applied to the QR texture.
// Minimum and Maximum bound the zoom itself; StepMinimum and StepMaximum bound
// the factor a single scroll event multiplies it by. Zero step bounds mean [0.5, 5].
type ZoomConfiguration struct {
	Initial     float64
	Minimum     float64
	Maximum     float64
	Speed       float64
	StepMinimum float64
	StepMaximum float64
}

// DefaultZoomConfiguration returns a 2x initial zoom bounded to [0.5, 5] with a 0.1 step per scroll unit.
func DefaultZoomConfiguration() ZoomConfiguration {
	return ZoomConfiguration{
		Initial:     defaultInitialZoom,
		Minimum:     defaultMinimumZoom,
		Maximum:     defaultMaximumZoom,
		Speed:       defaultZoomSpeed,
		StepMinimum: defaultStepMinimum,
		StepMaximum: defaultStepMaximum,
	}
}

func (configuration ZoomConfiguration) withStepDefaults() ZoomConfiguration {
	if configuration.StepMinimum == 0 {
		configuration.StepMinimum = defaultStepMinimum
	}
	if configuration.StepMaximum == 0 {
		configuration.StepMaximum = defaultStepMaximum
	}
	return configuration
}

// Validate reports whether the configuration describes a non-empty positive range.
func (configuration ZoomConfiguration) Validate() error {
	configuration = configuration.withStepDefaults()
	switch {
	case !(configuration.Minimum > 0):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "minimum zoom must be positive")
	case !(configuration.Maximum >= configuration.Minimum) || math.IsInf(configuration.Maximum, 0):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "maximum zoom must be finite and not below the minimum")
	case !(configuration.Speed > 0) || math.IsInf(configuration.Speed, 0):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "zoom speed must be positive")
	case !(configuration.Initial >= configuration.Minimum && configuration.Initial <= configuration.Maximum):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "initial zoom must lie within the bounds")
	case !(configuration.StepMinimum > 0 && configuration.StepMinimum <= 1):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "minimum step must lie in (0, 1]")
	case !(configuration.StepMaximum >= 1) || math.IsInf(configuration.StepMaximum, 0):
		return fmt.Errorf(invalidZoomFormat, ErrInvalidZoomConfiguration, "maximum step must be finite and at least 1")
	}
	return nil
}

// ZoomController turns scroll input into a bounded multiplicative zoom.
type ZoomController struct {
	configuration ZoomConfiguration
}

// NewZoomController constructs a controller for a validated configuration.
func NewZoomController(configuration ZoomConfiguration) ZoomController {
	return ZoomController{configuration: configuration.withStepDefaults()}
}

// Initial returns the zoom before any scroll input.
func (controller ZoomController) Initial() float64 {
	return controller.clamp(controller.configuration.Initial)
}

// Apply scales current by one step derived from scrollDelta.
// The step is clamped to the step range and the result to the zoom bounds.
func (controller ZoomController) Apply(scrollDelta float64, current float64) float64 {
	if scrollDelta == 0 || math.IsNaN(scrollDelta) {
		return current
	}
	configuration := controller.configuration
	step := clampRange(1+configuration.Speed*scrollDelta, configuration.StepMinimum, configuration.StepMaximum)
	return controller.clamp(current * step)
}

func (controller ZoomController) clamp(value float64) float64 {
	return clampRange(value, controller.configuration.Minimum, controller.configuration.Maximum)
}

func clampRange(value float64, minimum float64, maximum float64) float64 {
	return math.Min(math.Max(value, minimum), maximum)
}
