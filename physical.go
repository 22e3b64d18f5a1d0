package vc4vk

// QueueFlags is a bitmask of queue family capabilities.
type QueueFlags uint32

const (
	QueueGraphics QueueFlags = 1 << 0
	QueueCompute  QueueFlags = 1 << 1
	QueueTransfer QueueFlags = 1 << 2
)

// Extent3D is a three-dimensional extent.
type Extent3D struct {
	Width  uint32
	Height uint32
	Depth  uint32
}

// QueueFamilyProperties is the immutable metadata of one queue family. It
// does not vary across devices.
type QueueFamilyProperties struct {
	QueueFlags                  QueueFlags
	QueueCount                  uint32
	TimestampValidBits          uint32
	MinImageTransferGranularity Extent3D
}

// queueFamilyCount is fixed by the hardware model: one family, backed by
// the modesetting node. A second, non-modesetting family for headless
// rendering would split this.
const queueFamilyCount = 1

var queueFamilyProperties = [queueFamilyCount]QueueFamilyProperties{
	{
		QueueFlags:                  QueueGraphics | QueueCompute | QueueTransfer,
		QueueCount:                  1,
		TimestampValidBits:          64,
		MinImageTransferGranularity: Extent3D{Width: 1, Height: 1, Depth: 1},
	},
}

// Surface is an opaque handle produced by the windowing-system integration.
// The zero value is the null surface.
type Surface uint64

// Instance returns the owning instance.
func (pd *PhysicalDevice) Instance() *Instance {
	if pd == nil {
		return nil
	}
	return pd.instance
}

// Properties returns the fixed descriptive record of the GPU. The
// descriptive constants and the limits record are compile-time data,
// reported verbatim on every call.
func (pd *PhysicalDevice) Properties() (PhysicalDeviceProperties, Result) {
	if pd == nil {
		return PhysicalDeviceProperties{}, ErrorValidationFailed
	}
	return PhysicalDeviceProperties{
		APIVersion:       APIVersion,
		DriverVersion:    DriverVersion,
		VendorID:         vendorIDBroadcom,
		DeviceID:         deviceID,
		DeviceType:       DeviceTypeIntegratedGPU,
		DeviceName:       deviceName,
		Limits:           limits,
		SparseProperties: sparseProperties,
	}, Success
}

// Features returns the feature set the hardware supports.
func (pd *PhysicalDevice) Features() (PhysicalDeviceFeatures, Result) {
	if pd == nil {
		return PhysicalDeviceFeatures{}, ErrorValidationFailed
	}
	return supportedFeatures, Success
}

// QueueFamilyProperties lists the queue families through the count-then-fill
// contract.
func (pd *PhysicalDevice) QueueFamilyProperties(count *uint32, out []QueueFamilyProperties) Result {
	if pd == nil {
		return ErrorValidationFailed
	}
	return enumerate(queueFamilyProperties[:], count, out)
}

// EnumerateExtensionProperties lists the device extensions this driver
// implements. A non-empty layer name fails with ErrorLayerNotPresent.
func (pd *PhysicalDevice) EnumerateExtensionProperties(layerName string, count *uint32, out []ExtensionProperties) Result {
	if pd == nil {
		return ErrorValidationFailed
	}
	if layerName != "" {
		return ErrorLayerNotPresent
	}
	return enumerate(deviceExtensions, count, out)
}

// EnumerateLayerProperties lists the available device layers. This driver
// supports none.
func (pd *PhysicalDevice) EnumerateLayerProperties(count *uint32, out []LayerProperties) Result {
	if pd == nil {
		return ErrorValidationFailed
	}
	return enumerate(deviceLayers, count, out)
}

// SurfaceSupport reports whether the queue family can present to the
// surface. The one family sits on the modesetting node, so the answer is
// always yes; hardware exposing a separate non-modesetting family would
// answer false for it.
func (pd *PhysicalDevice) SurfaceSupport(family uint32, surface Surface) (bool, Result) {
	if pd == nil || surface == 0 {
		return false, ErrorValidationFailed
	}
	if family >= queueFamilyCount {
		return false, ErrorValidationFailed
	}
	return true, Success
}
