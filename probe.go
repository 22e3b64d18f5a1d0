//go:build linux

package vc4vk

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// DefaultDevicePath is the DRM node of the VC4 display controller.
const DefaultDevicePath = "/dev/dri/card0"

// Cache for Probe() results. The hardware behind the device node does not
// change at runtime, so we cache after the first probe to avoid reopening
// the node for every diagnostics query.
var (
	cachedSnapshot *CapabilitySnapshot
	cacheMu        sync.Mutex
	cacheErr       error
)

// probeConfig holds the configuration for a probe operation.
type probeConfig struct {
	devicePath string
}

// ProbeOption configures a probe operation.
type ProbeOption func(*probeConfig)

// WithDevicePath sets a custom DRM node path. This is primarily for testing
// and multi-card setups; production code uses DefaultDevicePath.
func WithDevicePath(path string) ProbeOption {
	return func(c *probeConfig) {
		c.devicePath = path
	}
}

// devProber probes a DRM device node and keeps the descriptor open until
// Close. It backs instance creation, where the Instance owns the handle for
// its whole lifetime.
type devProber struct {
	path string
	fd   int
}

// NewDeviceProber returns a Prober for the given DRM node.
func NewDeviceProber(path string) Prober {
	return &devProber{path: path, fd: -1}
}

func newDefaultProber() Prober {
	return NewDeviceProber(DefaultDevicePath)
}

// Probe opens the device node and runs the fixed capability query sequence:
// chip identity, tiling support, then each named optional feature flag.
func (p *devProber) Probe() (*CapabilitySnapshot, error) {
	fd, err := unix.Open(p.path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		if errors.Is(err, unix.ENOENT) {
			return nil, fmt.Errorf("%w: %s", ErrNoDevice, p.path)
		}
		return nil, fmt.Errorf("open %s: %w", p.path, err)
	}
	p.fd = fd

	snap := &CapabilitySnapshot{DevicePath: p.path}

	snap.ChipVersion, err = vc4ChipVersion(fd)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("query chip identity: %w", err)
	}

	snap.HasTiling = vc4TestTiling(fd)

	optional := []struct {
		param uint32
		dst   *bool
	}{
		{vc4ParamSupportsBranches, &snap.HasControlFlow},
		{vc4ParamSupportsETC1, &snap.HasETC1},
		{vc4ParamSupportsThreadedFS, &snap.HasThreadedFS},
		{vc4ParamSupportsMadvise, &snap.HasMadvise},
		{vc4ParamSupportsFixedRCL, &snap.HasFixedRCLOrder},
		{vc4ParamSupportsPerfmon, &snap.HasPerfmon},
	}
	for _, q := range optional {
		*q.dst, err = vc4HasFeature(fd, q.param)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("query feature %d: %w", q.param, err)
		}
	}

	return snap, nil
}

// Close releases the device descriptor. Safe to call after a failed Probe.
func (p *devProber) Close() error {
	if p.fd < 0 {
		return nil
	}
	err := unix.Close(p.fd)
	p.fd = -1
	return err
}

// ProbeWith runs a one-shot diagnostics probe: open, query, close. The
// returned snapshot holds no handle. Use instance creation when the handle
// must stay open.
func ProbeWith(opts ...ProbeOption) (*CapabilitySnapshot, error) {
	cfg := &probeConfig{devicePath: DefaultDevicePath}
	for _, opt := range opts {
		opt(cfg)
	}

	p := &devProber{path: cfg.devicePath, fd: -1}
	snap, err := p.Probe()
	if err != nil {
		return nil, err
	}
	if err := p.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", cfg.devicePath, err)
	}
	return snap, nil
}

// Probe probes the default device node and caches the result. Subsequent
// calls return the cached snapshot without touching the hardware. Use
// [ProbeNoCache] if you need fresh results.
func Probe() (*CapabilitySnapshot, error) {
	cacheMu.Lock()
	defer cacheMu.Unlock()

	if cachedSnapshot != nil || cacheErr != nil {
		return cachedSnapshot, cacheErr
	}
	cachedSnapshot, cacheErr = ProbeWith()
	return cachedSnapshot, cacheErr
}

// ProbeNoCache probes the default device node without using the cache.
func ProbeNoCache() (*CapabilitySnapshot, error) {
	return ProbeWith()
}

// ResetCache clears the cached probe result, forcing the next [Probe] call
// to touch the hardware again. This is primarily useful for testing.
func ResetCache() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	cachedSnapshot = nil
	cacheErr = nil
}
