package vc4vk

// ExtensionProperties describes one optionally-enabled named unit of
// functionality. Extension records are process-wide constants.
type ExtensionProperties struct {
	Name        string
	SpecVersion uint32
}

// LayerProperties describes an instance or device layer. This driver loads
// no layers; the tables below stay empty and requests naming a layer fail
// with ErrorLayerNotPresent.
type LayerProperties struct {
	Name                  string
	SpecVersion           uint32
	ImplementationVersion uint32
	Description           string
}

var instanceExtensions = []ExtensionProperties{
	{Name: "VK_KHR_surface", SpecVersion: 25},
	{Name: "VK_KHR_display", SpecVersion: 23},
}

var deviceExtensions = []ExtensionProperties{
	{Name: "VK_KHR_swapchain", SpecVersion: 70},
	{Name: "VK_KHR_maintenance1", SpecVersion: 2},
}

var instanceLayers []LayerProperties

var deviceLayers []LayerProperties

// findInstanceExtension returns the registry index of the named instance
// extension, or -1.
func findInstanceExtension(name string) int {
	for i, ext := range instanceExtensions {
		if ext.Name == name {
			return i
		}
	}
	return -1
}

// findDeviceExtension returns the registry index of the named device
// extension, or -1.
func findDeviceExtension(name string) int {
	for i, ext := range deviceExtensions {
		if ext.Name == name {
			return i
		}
	}
	return -1
}

// EnumerateInstanceExtensionProperties lists the instance extensions this
// driver implements. A non-empty layer name fails with ErrorLayerNotPresent
// since no layer provides extensions here.
func EnumerateInstanceExtensionProperties(layerName string, count *uint32, out []ExtensionProperties) Result {
	if layerName != "" {
		return ErrorLayerNotPresent
	}
	return enumerate(instanceExtensions, count, out)
}

// EnumerateInstanceLayerProperties lists the available instance layers.
// This driver supports none, so the count is always zero.
func EnumerateInstanceLayerProperties(count *uint32, out []LayerProperties) Result {
	return enumerate(instanceLayers, count, out)
}
