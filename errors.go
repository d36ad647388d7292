package celshade

import "errors"

var (
	ErrInvalidSigma   = errors.New("sigma must be positive")
	ErrInvalidWindow  = errors.New("invalid window size")
	ErrInvalidKernel  = errors.New("invalid kernel")
	ErrNoClasses      = errors.New("no color classes")
	ErrEmptyClass     = errors.New("color class has no colors")
	ErrNoLineColors   = errors.New("no line colors")
	ErrNegativeRounds = errors.New("round budget must not be negative")
	ErrShapeMismatch  = errors.New("image sizes differ")
	ErrNoLayers       = errors.New("no layers")
	ErrNilImage       = errors.New("nil image")
)
