package vc4vk

import (
	"fmt"
	"sync"
)

// procScope decides which resolver may hand an entry point out. Global
// entries resolve before any instance exists, instance entries need a live
// instance, and device entries are the only ones a device resolver returns.
type procScope int

const (
	scopeGlobal procScope = iota
	scopeInstance
	scopeDevice
)

type procEntry struct {
	scope procScope
	fn    any
}

var (
	procMu    sync.RWMutex
	procTable = make(map[string]*procEntry)
)

func defineProcs(scope procScope, names ...string) {
	for _, name := range names {
		procTable[name] = &procEntry{scope: scope}
	}
}

func bindProc(name string, fn any) {
	procTable[name].fn = fn
}

func init() {
	defineProcs(scopeGlobal,
		"vkCreateInstance",
		"vkEnumerateInstanceVersion",
		"vkEnumerateInstanceExtensionProperties",
		"vkEnumerateInstanceLayerProperties",
	)

	defineProcs(scopeInstance,
		"vkDestroyInstance",
		"vkEnumeratePhysicalDevices",
		"vkEnumeratePhysicalDeviceGroups",
		"vkGetInstanceProcAddr",
		"vkCreateDevice",
		"vkEnumerateDeviceExtensionProperties",
		"vkEnumerateDeviceLayerProperties",
		"vkGetPhysicalDeviceFeatures",
		"vkGetPhysicalDeviceFormatProperties",
		"vkGetPhysicalDeviceImageFormatProperties",
		"vkGetPhysicalDeviceProperties",
		"vkGetPhysicalDeviceQueueFamilyProperties",
		"vkGetPhysicalDeviceMemoryProperties",
		"vkGetPhysicalDeviceSparseImageFormatProperties",
		"vkGetPhysicalDeviceFeatures2",
		"vkGetPhysicalDeviceProperties2",
		"vkGetPhysicalDeviceFormatProperties2",
		"vkGetPhysicalDeviceImageFormatProperties2",
		"vkGetPhysicalDeviceQueueFamilyProperties2",
		"vkGetPhysicalDeviceMemoryProperties2",
		"vkGetPhysicalDeviceSparseImageFormatProperties2",
		"vkGetPhysicalDeviceExternalBufferProperties",
		"vkGetPhysicalDeviceExternalFenceProperties",
		"vkGetPhysicalDeviceExternalSemaphoreProperties",
		"vkGetPhysicalDeviceSurfaceSupportKHR",
	)

	defineProcs(scopeDevice,
		"vkGetDeviceProcAddr",
		"vkDestroyDevice",
		"vkGetDeviceQueue",
		"vkGetDeviceQueue2",
		"vkQueueSubmit",
		"vkQueueWaitIdle",
		"vkDeviceWaitIdle",
		"vkAllocateMemory",
		"vkFreeMemory",
		"vkMapMemory",
		"vkUnmapMemory",
		"vkFlushMappedMemoryRanges",
		"vkInvalidateMappedMemoryRanges",
		"vkGetDeviceMemoryCommitment",
		"vkBindBufferMemory",
		"vkBindBufferMemory2",
		"vkBindImageMemory",
		"vkBindImageMemory2",
		"vkGetBufferMemoryRequirements",
		"vkGetBufferMemoryRequirements2",
		"vkGetImageMemoryRequirements",
		"vkGetImageMemoryRequirements2",
		"vkGetImageSparseMemoryRequirements",
		"vkGetImageSparseMemoryRequirements2",
		"vkQueueBindSparse",
		"vkCreateFence",
		"vkDestroyFence",
		"vkResetFences",
		"vkGetFenceStatus",
		"vkWaitForFences",
		"vkCreateSemaphore",
		"vkDestroySemaphore",
		"vkCreateEvent",
		"vkDestroyEvent",
		"vkGetEventStatus",
		"vkSetEvent",
		"vkResetEvent",
		"vkCreateQueryPool",
		"vkDestroyQueryPool",
		"vkGetQueryPoolResults",
		"vkCreateBuffer",
		"vkDestroyBuffer",
		"vkCreateBufferView",
		"vkDestroyBufferView",
		"vkCreateImage",
		"vkDestroyImage",
		"vkGetImageSubresourceLayout",
		"vkCreateImageView",
		"vkDestroyImageView",
		"vkCreateShaderModule",
		"vkDestroyShaderModule",
		"vkCreatePipelineCache",
		"vkDestroyPipelineCache",
		"vkGetPipelineCacheData",
		"vkMergePipelineCaches",
		"vkCreateGraphicsPipelines",
		"vkCreateComputePipelines",
		"vkDestroyPipeline",
		"vkCreatePipelineLayout",
		"vkDestroyPipelineLayout",
		"vkCreateSampler",
		"vkDestroySampler",
		"vkCreateSamplerYcbcrConversion",
		"vkDestroySamplerYcbcrConversion",
		"vkCreateDescriptorSetLayout",
		"vkDestroyDescriptorSetLayout",
		"vkGetDescriptorSetLayoutSupport",
		"vkCreateDescriptorPool",
		"vkDestroyDescriptorPool",
		"vkResetDescriptorPool",
		"vkAllocateDescriptorSets",
		"vkFreeDescriptorSets",
		"vkUpdateDescriptorSets",
		"vkCreateDescriptorUpdateTemplate",
		"vkDestroyDescriptorUpdateTemplate",
		"vkUpdateDescriptorSetWithTemplate",
		"vkCreateFramebuffer",
		"vkDestroyFramebuffer",
		"vkCreateRenderPass",
		"vkDestroyRenderPass",
		"vkGetRenderAreaGranularity",
		"vkCreateCommandPool",
		"vkDestroyCommandPool",
		"vkResetCommandPool",
		"vkTrimCommandPool",
		"vkAllocateCommandBuffers",
		"vkFreeCommandBuffers",
		"vkBeginCommandBuffer",
		"vkEndCommandBuffer",
		"vkResetCommandBuffer",
		"vkGetDeviceGroupPeerMemoryFeatures",
		"vkCmdBindPipeline",
		"vkCmdSetViewport",
		"vkCmdSetScissor",
		"vkCmdSetLineWidth",
		"vkCmdSetDepthBias",
		"vkCmdSetBlendConstants",
		"vkCmdSetDepthBounds",
		"vkCmdSetStencilCompareMask",
		"vkCmdSetStencilWriteMask",
		"vkCmdSetStencilReference",
		"vkCmdSetDeviceMask",
		"vkCmdBindDescriptorSets",
		"vkCmdBindIndexBuffer",
		"vkCmdBindVertexBuffers",
		"vkCmdDraw",
		"vkCmdDrawIndexed",
		"vkCmdDrawIndirect",
		"vkCmdDrawIndexedIndirect",
		"vkCmdDispatch",
		"vkCmdDispatchIndirect",
		"vkCmdDispatchBase",
		"vkCmdCopyBuffer",
		"vkCmdCopyImage",
		"vkCmdBlitImage",
		"vkCmdCopyBufferToImage",
		"vkCmdCopyImageToBuffer",
		"vkCmdUpdateBuffer",
		"vkCmdFillBuffer",
		"vkCmdClearColorImage",
		"vkCmdClearDepthStencilImage",
		"vkCmdClearAttachments",
		"vkCmdResolveImage",
		"vkCmdSetEvent",
		"vkCmdResetEvent",
		"vkCmdWaitEvents",
		"vkCmdPipelineBarrier",
		"vkCmdBeginQuery",
		"vkCmdEndQuery",
		"vkCmdResetQueryPool",
		"vkCmdWriteTimestamp",
		"vkCmdCopyQueryPoolResults",
		"vkCmdPushConstants",
		"vkCmdBeginRenderPass",
		"vkCmdNextSubpass",
		"vkCmdEndRenderPass",
		"vkCmdExecuteCommands",
	)

	bindProc("vkCreateInstance", CreateInstance)
	bindProc("vkEnumerateInstanceVersion", EnumerateInstanceVersion)
	bindProc("vkEnumerateInstanceExtensionProperties", EnumerateInstanceExtensionProperties)
	bindProc("vkEnumerateInstanceLayerProperties", EnumerateInstanceLayerProperties)
	bindProc("vkDestroyInstance", (*Instance).Destroy)
	bindProc("vkEnumeratePhysicalDevices", (*Instance).EnumeratePhysicalDevices)
	bindProc("vkEnumeratePhysicalDeviceGroups", (*Instance).EnumeratePhysicalDeviceGroups)
	bindProc("vkGetInstanceProcAddr", GetInstanceProcAddr)
	bindProc("vkGetPhysicalDeviceFeatures", (*PhysicalDevice).Features)
	bindProc("vkGetPhysicalDeviceProperties", (*PhysicalDevice).Properties)
	bindProc("vkGetPhysicalDeviceQueueFamilyProperties", (*PhysicalDevice).QueueFamilyProperties)
	bindProc("vkEnumerateDeviceExtensionProperties", (*PhysicalDevice).EnumerateExtensionProperties)
	bindProc("vkEnumerateDeviceLayerProperties", (*PhysicalDevice).EnumerateLayerProperties)
	bindProc("vkGetPhysicalDeviceSurfaceSupportKHR", (*PhysicalDevice).SurfaceSupport)
	bindProc("vkCreateDevice", (*PhysicalDevice).CreateDevice)
	bindProc("vkGetDeviceProcAddr", GetDeviceProcAddr)
	bindProc("vkDestroyDevice", (*Device).Destroy)
	bindProc("vkGetDeviceQueue", (*Device).Queue)
}

// RegisterProc installs the implementation behind a known entry-point name.
// Subsystems living outside this package (memory, pipelines, command
// recording) bind their entry points through it at startup. Unknown names
// are rejected so a typo cannot silently create an unreachable entry.
func RegisterProc(name string, fn any) error {
	procMu.Lock()
	defer procMu.Unlock()
	entry, ok := procTable[name]
	if !ok {
		return fmt.Errorf("register %q: unknown entry point", name)
	}
	entry.fn = fn
	return nil
}

// GetInstanceProcAddr resolves an entry point by name. With a nil instance
// only the pre-instance entry points resolve; with a live instance every
// known, bound entry point does. Unknown and unbound names resolve to nil.
func GetInstanceProcAddr(inst *Instance, name string) any {
	procMu.RLock()
	defer procMu.RUnlock()
	entry, ok := procTable[name]
	if !ok {
		return nil
	}
	if inst == nil && entry.scope != scopeGlobal {
		return nil
	}
	return entry.fn
}

// GetDeviceProcAddr resolves a device-scope entry point by name. Names
// scoped to the instance or earlier resolve to nil even through a valid
// device; callers hold exactly the entry points their handle entitles them
// to.
func GetDeviceProcAddr(dev *Device, name string) any {
	if dev == nil {
		return nil
	}
	procMu.RLock()
	defer procMu.RUnlock()
	entry, ok := procTable[name]
	if !ok || entry.scope != scopeDevice {
		return nil
	}
	return entry.fn
}
