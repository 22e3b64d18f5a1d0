package vc4vk

import "fmt"

// Version packing for the reported API version: major in bits 22+, minor in
// bits 12..21, patch below.
const (
	// APIVersion is the host API version this driver implements (1.1.0).
	APIVersion uint32 = 1<<22 | 1<<12

	// DriverVersion is the fixed version this driver reports for itself.
	DriverVersion uint32 = 1
)

// MakeVersion packs a major/minor/patch triple the way APIVersion is packed.
func MakeVersion(major, minor, patch uint32) uint32 {
	return major<<22 | minor<<12 | patch
}

// VersionMajor extracts the major component of a packed version.
func VersionMajor(version uint32) uint32 { return version >> 22 }

// VersionMinor extracts the minor component of a packed version.
func VersionMinor(version uint32) uint32 { return (version >> 12) & 0x3ff }

// VersionPatch extracts the patch component of a packed version.
func VersionPatch(version uint32) uint32 { return version & 0xfff }

// PhysicalDeviceType classifies the GPU.
type PhysicalDeviceType int32

const (
	DeviceTypeOther PhysicalDeviceType = iota
	DeviceTypeIntegratedGPU
	DeviceTypeDiscreteGPU
	DeviceTypeVirtualGPU
	DeviceTypeCPU
)

var deviceTypeNames = map[PhysicalDeviceType]string{
	DeviceTypeOther:         "other",
	DeviceTypeIntegratedGPU: "integrated GPU",
	DeviceTypeDiscreteGPU:   "discrete GPU",
	DeviceTypeVirtualGPU:    "virtual GPU",
	DeviceTypeCPU:           "CPU",
}

func (t PhysicalDeviceType) String() string {
	if name, ok := deviceTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("PhysicalDeviceType(%d)", int32(t))
}

// Fixed descriptive constants for the one supported GPU. Reported verbatim
// on every property query.
const (
	vendorIDBroadcom = 0x14E4
	deviceID         = 0
	deviceName       = "VideoCore IV HW"
)

// PhysicalDeviceLimits is the fixed capability/limits record of the
// hardware target.
type PhysicalDeviceLimits struct {
	MaxImageDimension1D    uint32
	MaxImageDimension2D    uint32
	MaxImageDimension3D    uint32
	MaxImageDimensionCube  uint32
	MaxImageArrayLayers    uint32
	MaxTexelBufferElements uint32

	MaxUniformBufferRange uint32
	MaxStorageBufferRange uint32
	MaxPushConstantsSize  uint32

	MaxMemoryAllocationCount  uint32
	MaxSamplerAllocationCount uint32

	MaxBoundDescriptorSets              uint32
	MaxPerStageDescriptorSamplers       uint32
	MaxPerStageDescriptorUniformBuffers uint32
	MaxPerStageDescriptorSampledImages  uint32
	MaxPerStageResources                uint32

	MaxVertexInputAttributes      uint32
	MaxVertexInputBindings        uint32
	MaxVertexInputAttributeOffset uint32
	MaxVertexInputBindingStride   uint32
	MaxVertexOutputComponents     uint32

	MaxFragmentInputComponents   uint32
	MaxFragmentOutputAttachments uint32

	MaxViewports          uint32
	MaxViewportDimensions [2]uint32

	MaxFramebufferWidth  uint32
	MaxFramebufferHeight uint32
	MaxFramebufferLayers uint32
	MaxColorAttachments  uint32

	SubPixelPrecisionBits uint32
	SubTexelPrecisionBits uint32
	MipmapPrecisionBits   uint32

	MaxSamplerLodBias    float32
	MaxSamplerAnisotropy float32

	PointSizeRange       [2]float32
	LineWidthRange       [2]float32
	PointSizeGranularity float32
	LineWidthGranularity float32

	TimestampPeriod float32

	NonCoherentAtomSize uint64
}

// limits is the VideoCore IV record. The 2048 texture/render ceiling and the
// single-viewport model come straight from the hardware.
var limits = PhysicalDeviceLimits{
	MaxImageDimension1D:    2048,
	MaxImageDimension2D:    2048,
	MaxImageDimension3D:    256,
	MaxImageDimensionCube:  2048,
	MaxImageArrayLayers:    256,
	MaxTexelBufferElements: 65536,

	MaxUniformBufferRange: 16384,
	MaxStorageBufferRange: 1 << 27,
	MaxPushConstantsSize:  128,

	MaxMemoryAllocationCount:  4096,
	MaxSamplerAllocationCount: 4000,

	MaxBoundDescriptorSets:              4,
	MaxPerStageDescriptorSamplers:       16,
	MaxPerStageDescriptorUniformBuffers: 12,
	MaxPerStageDescriptorSampledImages:  16,
	MaxPerStageResources:                44,

	MaxVertexInputAttributes:      8,
	MaxVertexInputBindings:        8,
	MaxVertexInputAttributeOffset: 2047,
	MaxVertexInputBindingStride:   2048,
	MaxVertexOutputComponents:     64,

	MaxFragmentInputComponents:   64,
	MaxFragmentOutputAttachments: 1,

	MaxViewports:          1,
	MaxViewportDimensions: [2]uint32{2048, 2048},

	MaxFramebufferWidth:  2048,
	MaxFramebufferHeight: 2048,
	MaxFramebufferLayers: 1,
	MaxColorAttachments:  1,

	SubPixelPrecisionBits: 4,
	SubTexelPrecisionBits: 4,
	MipmapPrecisionBits:   4,

	MaxSamplerLodBias:    15,
	MaxSamplerAnisotropy: 1,

	PointSizeRange:       [2]float32{1, 512},
	LineWidthRange:       [2]float32{1, 32},
	PointSizeGranularity: 0.125,
	LineWidthGranularity: 0.125,

	TimestampPeriod: 1000,

	NonCoherentAtomSize: 256,
}

// PhysicalDeviceSparseProperties mirrors the fixed sparse residency record.
type PhysicalDeviceSparseProperties struct {
	ResidencyStandard2DBlockShape            bool
	ResidencyStandard2DMultisampleBlockShape bool
	ResidencyStandard3DBlockShape            bool
	ResidencyAlignedMipSize                  bool
	ResidencyNonResidentStrict               bool
}

var sparseProperties = PhysicalDeviceSparseProperties{
	ResidencyStandard2DBlockShape:            true,
	ResidencyStandard2DMultisampleBlockShape: true,
	ResidencyStandard3DBlockShape:            true,
	ResidencyAlignedMipSize:                  true,
	ResidencyNonResidentStrict:               true,
}

// PhysicalDeviceProperties is the full descriptive record of the GPU.
type PhysicalDeviceProperties struct {
	APIVersion        uint32
	DriverVersion     uint32
	VendorID          uint32
	DeviceID          uint32
	DeviceType        PhysicalDeviceType
	DeviceName        string
	PipelineCacheUUID [16]byte
	Limits            PhysicalDeviceLimits
	SparseProperties  PhysicalDeviceSparseProperties
}
