package vc4vk

import "fmt"

// Check probes the hardware and returns a *[CapabilityError] for the first
// required capability that is unavailable, or nil if all are present. The
// probe result is cached process-wide (see [Probe]).
func Check(required ...HardwareFeature) error {
	snap, err := Probe()
	if err != nil {
		return fmt.Errorf("probe hardware: %w", err)
	}
	return snap.Check(required...)
}

// Check validates the required capabilities against an already-probed
// snapshot.
func (s *CapabilitySnapshot) Check(required ...HardwareFeature) error {
	for _, f := range required {
		supported, known := s.Supports(f)
		if !known {
			return &CapabilityError{Feature: f.String(), Reason: "unknown capability"}
		}
		if !supported {
			return &CapabilityError{Feature: f.String(), Reason: s.Diagnose(f)}
		}
	}
	return nil
}

// Diagnose returns an operator-facing reason string explaining why a
// capability is unavailable and what can be done about it.
func (s *CapabilitySnapshot) Diagnose(f HardwareFeature) string {
	switch f {
	case FeatureTiling:
		return "kernel lacks the VC4 tiling ioctls; update the vc4 kernel module"
	case FeatureControlFlow:
		return "kernel does not advertise shader branch support; requires kernel 4.12+"
	case FeatureETC1:
		return "kernel does not advertise ETC1 texture support on this chip revision"
	case FeatureThreadedFS:
		return "kernel does not advertise threaded fragment shader support; requires kernel 4.12+"
	case FeatureMadvise:
		return "kernel does not advertise buffer purge advice; requires kernel 4.15+"
	case FeatureFixedRCLOrder:
		return "kernel does not advertise fixed render-list ordering; requires kernel 4.15+"
	case FeaturePerfmon:
		return "kernel does not advertise performance counters; requires kernel 4.17+"
	}
	return "not supported"
}
