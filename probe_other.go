//go:build !linux

package vc4vk

// DefaultDevicePath is the DRM node of the VC4 display controller.
const DefaultDevicePath = "/dev/dri/card0"

// probeConfig holds the configuration for a probe operation.
// On non-Linux platforms this is a no-op placeholder.
type probeConfig struct{}

// ProbeOption configures a probe operation.
type ProbeOption func(*probeConfig)

func WithDevicePath(_ string) ProbeOption { return func(*probeConfig) {} }

type stubProber struct{}

// NewDeviceProber returns a Prober for the given DRM node.
// On non-Linux platforms every probe fails with ErrUnsupportedPlatform.
func NewDeviceProber(_ string) Prober { return stubProber{} }

func newDefaultProber() Prober { return stubProber{} }

func (stubProber) Probe() (*CapabilitySnapshot, error) { return nil, ErrUnsupportedPlatform }
func (stubProber) Close() error                        { return nil }

func ProbeWith(_ ...ProbeOption) (*CapabilitySnapshot, error) {
	return nil, ErrUnsupportedPlatform
}

func Probe() (*CapabilitySnapshot, error) {
	return nil, ErrUnsupportedPlatform
}

func ProbeNoCache() (*CapabilitySnapshot, error) {
	return nil, ErrUnsupportedPlatform
}

func ResetCache() {}
