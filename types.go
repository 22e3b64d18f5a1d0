package vc4vk

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by hardware probing on platforms
// without the DRM device interface.
var ErrUnsupportedPlatform = errors.New("hardware probing requires Linux")

// ErrNoDevice is returned when the expected GPU device node is absent.
// Instance creation translates it to ErrorIncompatibleDriver.
var ErrNoDevice = errors.New("no compatible GPU device node")

// CapabilitySnapshot records the ground truth about the hardware behind the
// DRM device node: chip revision, frame-buffer tiling support, and the
// optional ISA features the kernel driver advertises. It is established
// exactly once per Instance and never mutated afterward.
type CapabilitySnapshot struct {
	// DevicePath is the DRM node the snapshot was probed from.
	DevicePath string

	// ChipVersion is the V3D revision, major*10+minor (21 for VideoCore IV).
	ChipVersion uint32

	// HasTiling indicates the kernel supports the tiling ioctls used for
	// T-format frame buffers.
	HasTiling bool

	// Optional ISA/driver features, one per DRM_VC4_PARAM_SUPPORTS_* flag.
	HasControlFlow   bool // shader branch instructions
	HasETC1          bool // ETC1 texture compression
	HasThreadedFS    bool // threaded fragment shaders
	HasMadvise       bool // buffer-object purge advice
	HasFixedRCLOrder bool // fixed render-control-list primitive order
	HasPerfmon       bool // hardware performance counters
}

// Prober establishes the hardware facts behind a device node. Probe opens
// the node and issues the capability queries; the open handle stays with the
// Prober until Close. Instance creation runs a Prober once and the Instance
// owns closing it.
type Prober interface {
	Probe() (*CapabilitySnapshot, error)
	Close() error
}

// CapabilityError reports a required hardware capability that is
// unavailable, with an operator-facing reason.
type CapabilityError struct {
	Feature string
	Reason  string
	Err     error
}

func (e *CapabilityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capability %s: %s: %v", e.Feature, e.Reason, e.Err)
	}
	return fmt.Sprintf("capability %s: %s", e.Feature, e.Reason)
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// HardwareFeature identifies a probed hardware capability checkable via
// [Check].
type HardwareFeature int

const (
	// FeatureTiling requires kernel support for tiled frame buffers.
	FeatureTiling HardwareFeature = iota
	// FeatureControlFlow requires shader branch instruction support.
	FeatureControlFlow
	// FeatureETC1 requires ETC1 texture compression support.
	FeatureETC1
	// FeatureThreadedFS requires threaded fragment shader support.
	FeatureThreadedFS
	// FeatureMadvise requires buffer-object purge advice support.
	FeatureMadvise
	// FeatureFixedRCLOrder requires fixed render-control-list ordering.
	FeatureFixedRCLOrder
	// FeaturePerfmon requires hardware performance counter support.
	FeaturePerfmon
)

var hardwareFeatureNames = map[HardwareFeature]string{
	FeatureTiling:        "tiling",
	FeatureControlFlow:   "control-flow",
	FeatureETC1:          "etc1",
	FeatureThreadedFS:    "threaded-fs",
	FeatureMadvise:       "madvise",
	FeatureFixedRCLOrder: "fixed-rcl-order",
	FeaturePerfmon:       "perfmon",
}

func (f HardwareFeature) String() string {
	if name, ok := hardwareFeatureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("HardwareFeature(%d)", int(f))
}

// FeatureValues returns all checkable hardware features in stable order.
func FeatureValues() []HardwareFeature {
	return []HardwareFeature{
		FeatureTiling,
		FeatureControlFlow,
		FeatureETC1,
		FeatureThreadedFS,
		FeatureMadvise,
		FeatureFixedRCLOrder,
		FeaturePerfmon,
	}
}

// FeatureNames returns the names of all checkable hardware features in
// stable order.
func FeatureNames() []string {
	values := FeatureValues()
	names := make([]string, 0, len(values))
	for _, f := range values {
		names = append(names, f.String())
	}
	return names
}

// ParseHardwareFeature maps a feature name back to its value.
func ParseHardwareFeature(name string) (HardwareFeature, error) {
	for _, f := range FeatureValues() {
		if f.String() == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown hardware feature %q", name)
}

// Supports maps a [HardwareFeature] to its probed state. The second return
// is false for unknown features.
func (s *CapabilitySnapshot) Supports(f HardwareFeature) (bool, bool) {
	switch f {
	case FeatureTiling:
		return s.HasTiling, true
	case FeatureControlFlow:
		return s.HasControlFlow, true
	case FeatureETC1:
		return s.HasETC1, true
	case FeatureThreadedFS:
		return s.HasThreadedFS, true
	case FeatureMadvise:
		return s.HasMadvise, true
	case FeatureFixedRCLOrder:
		return s.HasFixedRCLOrder, true
	case FeaturePerfmon:
		return s.HasPerfmon, true
	default:
		return false, false
	}
}
