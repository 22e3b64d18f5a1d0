package vc4vk

import "fmt"

// Result is the status code of a driver operation. The numeric values
// reproduce the host API's binary specification and must not change.
//
// Success and Incomplete are non-error outcomes: Incomplete tells an
// enumeration caller that its buffer was too small and the call should be
// retried with a larger one. Everything negative is a real failure.
type Result int32

const (
	// Success indicates the operation completed fully.
	Success Result = 0
	// Incomplete indicates an enumeration wrote fewer items than available
	// because the caller's buffer was too small. Not a failure.
	Incomplete Result = 5

	// ErrorOutOfHostMemory reports an allocation failure at instance or
	// queue-array granularity.
	ErrorOutOfHostMemory Result = -1
	// ErrorInitializationFailed reports a hardware query failure after the
	// device node was opened successfully.
	ErrorInitializationFailed Result = -3
	// ErrorLayerNotPresent reports a request naming a layer; this driver
	// supports no layers.
	ErrorLayerNotPresent Result = -6
	// ErrorExtensionNotPresent reports a requested extension name missing
	// from the registry. No object is created.
	ErrorExtensionNotPresent Result = -7
	// ErrorFeatureNotPresent reports a requested feature bit the hardware
	// does not support. No object is created.
	ErrorFeatureNotPresent Result = -8
	// ErrorIncompatibleDriver reports that the expected GPU device node is
	// absent at instance creation.
	ErrorIncompatibleDriver Result = -9
	// ErrorTooManyObjects reports an allocation failure at device
	// granularity, distinct from instance-level host-memory exhaustion.
	ErrorTooManyObjects Result = -10
	// ErrorValidationFailed reports a caller contract violation (nil
	// required handle, out-of-range index, duplicate queue-family request).
	ErrorValidationFailed Result = -1000011001
)

var resultNames = map[Result]string{
	Success:                   "success",
	Incomplete:                "incomplete",
	ErrorOutOfHostMemory:      "out of host memory",
	ErrorInitializationFailed: "initialization failed",
	ErrorLayerNotPresent:      "layer not present",
	ErrorExtensionNotPresent:  "extension not present",
	ErrorFeatureNotPresent:    "feature not present",
	ErrorIncompatibleDriver:   "incompatible driver",
	ErrorTooManyObjects:       "too many objects",
	ErrorValidationFailed:     "validation failed",
}

func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Result(%d)", int32(r))
}

// Error implements the error interface so failure codes can travel as plain
// Go errors. Callers must not treat Success or Incomplete as errors; use
// IsError to tell the two apart.
func (r Result) Error() string {
	return r.String()
}

// IsError reports whether r is a failure code. Success and Incomplete are
// not failures.
func (r Result) IsError() bool {
	return r < 0
}
