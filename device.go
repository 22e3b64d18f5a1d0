package vc4vk

// QueueCreateInfo requests queues from one family.
type QueueCreateInfo struct {
	FamilyIndex uint32
	QueueCount  uint32

	// Flags stores creation flags for the family's queues. The driver
	// accepts only the zero value today; any other value makes the queues
	// unretrievable through [Device.Queue].
	Flags uint32
}

// DeviceCreateInfo describes a device-creation request.
type DeviceCreateInfo struct {
	// QueueCreateInfos must name each queue family at most once.
	QueueCreateInfos []QueueCreateInfo

	// EnabledExtensions names the device extensions to enable. Every name
	// must be present in the device-extension registry.
	EnabledExtensions []string

	// EnabledFeatures, when non-nil, is the feature set to enable. Every
	// requested feature must be hardware-supported.
	EnabledFeatures *PhysicalDeviceFeatures
}

type deviceConfig struct {
	alloc Allocator
}

// DeviceOption configures device creation.
type DeviceOption func(*deviceConfig)

// WithDeviceAllocator overrides the allocator inherited from the instance
// for this device and its queues.
func WithDeviceAllocator(a Allocator) DeviceOption {
	return func(c *deviceConfig) {
		c.alloc = a
	}
}

// Device is a logical device negotiated against the physical device. It
// owns its queue objects. Creation and destruction must be externally
// synchronized.
type Device struct {
	phys              *PhysicalDevice
	enabledExtensions []string
	enabledFeatures   PhysicalDeviceFeatures
	queues            [queueFamilyCount][]Queue
	queueFlags        [queueFamilyCount]uint32
	alloc             Allocator
	destroyed         bool
}

// Queue is one hardware submission queue. Queues are created with their
// Device and live exactly as long as it does.
type Queue struct {
	familyIndex   uint32
	queueIndex    uint32
	lastEmitSeqno uint64
	device        *Device
}

// FamilyIndex returns the queue's family.
func (q *Queue) FamilyIndex() uint32 { return q.familyIndex }

// QueueIndex returns the queue's position within its family.
func (q *Queue) QueueIndex() uint32 { return q.queueIndex }

// Device returns the owning device.
func (q *Queue) Device() *Device { return q.device }

// CreateDevice validates the whole request against the physical device and
// only then allocates. Extension names are checked first, then requested
// features, then the queue requests; the first failure wins and nothing is
// allocated.
//
// Failure codes: ErrorExtensionNotPresent for an unknown extension name,
// ErrorFeatureNotPresent for an unsupported requested feature,
// ErrorValidationFailed for a malformed queue request (out-of-range or
// duplicated family, zero queue count), ErrorTooManyObjects when the
// allocator refuses the device, and ErrorOutOfHostMemory when it refuses a
// queue array.
func (pd *PhysicalDevice) CreateDevice(info *DeviceCreateInfo, opts ...DeviceOption) (*Device, Result) {
	if pd == nil || info == nil {
		return nil, ErrorValidationFailed
	}

	for _, name := range info.EnabledExtensions {
		if findDeviceExtension(name) < 0 {
			return nil, ErrorExtensionNotPresent
		}
	}

	if info.EnabledFeatures != nil {
		if missing := validateFeatures(info.EnabledFeatures); missing != "" {
			return nil, ErrorFeatureNotPresent
		}
	}

	var requested [queueFamilyCount]bool
	for _, qi := range info.QueueCreateInfos {
		if qi.FamilyIndex >= queueFamilyCount {
			return nil, ErrorValidationFailed
		}
		if requested[qi.FamilyIndex] {
			return nil, ErrorValidationFailed
		}
		if qi.QueueCount == 0 {
			return nil, ErrorValidationFailed
		}
		requested[qi.FamilyIndex] = true
	}

	cfg := deviceConfig{alloc: pd.instance.alloc}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !cfg.alloc.Allocate(AllocationScopeDevice) {
		return nil, ErrorTooManyObjects
	}

	dev := &Device{
		phys:              pd,
		enabledExtensions: append([]string(nil), info.EnabledExtensions...),
		alloc:             cfg.alloc,
	}
	if info.EnabledFeatures != nil {
		dev.enabledFeatures = *info.EnabledFeatures
	}

	for _, qi := range info.QueueCreateInfos {
		if !cfg.alloc.Allocate(AllocationScopeObject) {
			dev.releaseQueues()
			cfg.alloc.Free(AllocationScopeDevice)
			return nil, ErrorOutOfHostMemory
		}
		queues := make([]Queue, qi.QueueCount)
		for i := range queues {
			queues[i] = Queue{
				familyIndex: qi.FamilyIndex,
				queueIndex:  uint32(i),
				device:      dev,
			}
		}
		dev.queues[qi.FamilyIndex] = queues
		dev.queueFlags[qi.FamilyIndex] = qi.Flags
	}

	return dev, Success
}

// releaseQueues frees every queue array currently held by the device.
func (d *Device) releaseQueues() {
	for family, queues := range d.queues {
		if queues != nil {
			d.alloc.Free(AllocationScopeObject)
			d.queues[family] = nil
		}
	}
}

// Destroy releases the device's queue arrays and then the device itself.
// It must be called exactly once per successfully created Device, before
// the owning Instance is destroyed.
func (d *Device) Destroy() {
	if d == nil || d.destroyed {
		return
	}
	d.destroyed = true
	d.releaseQueues()
	d.alloc.Free(AllocationScopeDevice)
}

// PhysicalDevice returns the physical device this device was created from.
func (d *Device) PhysicalDevice() *PhysicalDevice {
	if d == nil {
		return nil
	}
	return d.phys
}

// EnabledExtensions returns the validated extension names this device was
// created with.
func (d *Device) EnabledExtensions() []string {
	out := make([]string, len(d.enabledExtensions))
	copy(out, d.enabledExtensions)
	return out
}

// EnabledFeatures returns the feature set this device was created with.
func (d *Device) EnabledFeatures() PhysicalDeviceFeatures {
	return d.enabledFeatures
}

// Queue returns the queue at the given family and index. The family must
// have been named in the creation request with plain flags, and the index
// must be below the requested count; anything else fails with
// ErrorValidationFailed.
func (d *Device) Queue(family, index uint32) (*Queue, Result) {
	if d == nil || family >= queueFamilyCount {
		return nil, ErrorValidationFailed
	}
	if d.queueFlags[family] != 0 {
		return nil, ErrorValidationFailed
	}
	queues := d.queues[family]
	if uint32(len(queues)) <= index {
		return nil, ErrorValidationFailed
	}
	return &queues[index], Success
}
