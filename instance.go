package vc4vk

import "errors"

// InstanceCreateInfo describes an instance-creation request.
type InstanceCreateInfo struct {
	// ApplicationName is informational only.
	ApplicationName string

	// EnabledLayers must be empty: this driver loads no layers and rejects
	// any request naming one with ErrorLayerNotPresent.
	EnabledLayers []string

	// EnabledExtensions names the instance extensions to enable. Every name
	// must be present in the instance-extension registry.
	EnabledExtensions []string
}

type instanceConfig struct {
	prober Prober
	alloc  Allocator
}

// InstanceOption configures instance creation.
type InstanceOption func(*instanceConfig)

// WithProber substitutes the hardware prober. This is primarily for testing
// and for probing a DRM node other than DefaultDevicePath (combine with
// [NewDeviceProber]).
func WithProber(p Prober) InstanceOption {
	return func(c *instanceConfig) {
		c.prober = p
	}
}

// WithAllocator installs an allocation bookkeeping hook for the instance
// and everything created from it.
func WithAllocator(a Allocator) InstanceOption {
	return func(c *instanceConfig) {
		c.alloc = a
	}
}

// Instance is the top-level per-process driver context. It owns the open
// hardware handle, the probed capability snapshot, and the single physical
// device. Creation and destruction must be externally synchronized;
// queries against the immutable snapshot are safe from any goroutine.
type Instance struct {
	caps              *CapabilitySnapshot
	enabledExtensions []string
	phys              PhysicalDevice
	prober            Prober
	alloc             Allocator
	destroyed         bool
}

// PhysicalDevice is a read-only view into its owning Instance's hardware
// facts. It has no independent lifetime: there is exactly one per Instance
// and it lives exactly as long as the Instance does.
type PhysicalDevice struct {
	instance *Instance
}

// CreateInstance validates the request, probes the hardware, and returns
// the new Instance. The whole request is validated before the device node
// is touched; on any validation failure nothing is probed, nothing is
// allocated, and no partial Instance exists.
//
// Failure codes: ErrorLayerNotPresent for a non-empty layer list,
// ErrorExtensionNotPresent for an unknown extension name,
// ErrorOutOfHostMemory when the allocator refuses the instance,
// ErrorIncompatibleDriver when the device node is absent, and
// ErrorInitializationFailed when a hardware query fails after open.
func CreateInstance(info *InstanceCreateInfo, opts ...InstanceOption) (*Instance, Result) {
	if info == nil {
		return nil, ErrorValidationFailed
	}
	if len(info.EnabledLayers) > 0 {
		return nil, ErrorLayerNotPresent
	}

	enabled := make([]string, 0, len(info.EnabledExtensions))
	for _, name := range info.EnabledExtensions {
		if findInstanceExtension(name) < 0 {
			return nil, ErrorExtensionNotPresent
		}
		enabled = append(enabled, name)
	}

	cfg := instanceConfig{alloc: defaultAllocator}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.prober == nil {
		cfg.prober = newDefaultProber()
	}

	if !cfg.alloc.Allocate(AllocationScopeInstance) {
		return nil, ErrorOutOfHostMemory
	}

	snap, err := cfg.prober.Probe()
	if err != nil {
		cfg.alloc.Free(AllocationScopeInstance)
		if errors.Is(err, ErrNoDevice) {
			return nil, ErrorIncompatibleDriver
		}
		return nil, ErrorInitializationFailed
	}

	inst := &Instance{
		caps:              snap,
		enabledExtensions: enabled,
		prober:            cfg.prober,
		alloc:             cfg.alloc,
	}
	inst.phys.instance = inst
	return inst, Success
}

// Destroy releases the hardware handle, then the Instance's own allocation.
// It must be called exactly once per successfully created Instance, after
// every Device created from it has been destroyed.
func (inst *Instance) Destroy() {
	if inst == nil || inst.destroyed {
		return
	}
	inst.destroyed = true
	inst.prober.Close()
	inst.alloc.Free(AllocationScopeInstance)
}

// Capabilities returns the immutable hardware snapshot probed at creation.
func (inst *Instance) Capabilities() *CapabilitySnapshot {
	return inst.caps
}

// EnabledExtensions returns the validated extension names this instance was
// created with.
func (inst *Instance) EnabledExtensions() []string {
	out := make([]string, len(inst.enabledExtensions))
	copy(out, inst.enabledExtensions)
	return out
}

// EnumeratePhysicalDevices lists the physical devices behind this instance.
// The hardware target is a single fixed GPU, so the total is always one.
func (inst *Instance) EnumeratePhysicalDevices(count *uint32, out []*PhysicalDevice) Result {
	if inst == nil {
		return ErrorValidationFailed
	}
	return enumerate([]*PhysicalDevice{&inst.phys}, count, out)
}

// PhysicalDeviceGroupProperties describes one device group.
type PhysicalDeviceGroupProperties struct {
	PhysicalDevices  []*PhysicalDevice
	SubsetAllocation bool
}

// EnumeratePhysicalDeviceGroups reports exactly one group holding the one
// physical device, with subset allocation unsupported.
func (inst *Instance) EnumeratePhysicalDeviceGroups(count *uint32, out []PhysicalDeviceGroupProperties) Result {
	if inst == nil {
		return ErrorValidationFailed
	}
	groups := []PhysicalDeviceGroupProperties{{
		PhysicalDevices:  []*PhysicalDevice{&inst.phys},
		SubsetAllocation: false,
	}}
	return enumerate(groups, count, out)
}

// EnumerateInstanceVersion reports the host API version this driver
// implements. Callable before any instance exists.
func EnumerateInstanceVersion(version *uint32) Result {
	if version == nil {
		return ErrorValidationFailed
	}
	*version = APIVersion
	return Success
}
