// Package vc4vk implements the negotiation core of a Vulkan driver for the
// Broadcom VideoCore IV GPU found on Raspberry Pi boards.
//
// This package covers everything that happens before rendering: probing the
// kernel's VC4 DRM interface for hardware capabilities, creating and
// destroying instances and logical devices, enumerating extensions, layers,
// features, and limits, and resolving entry points with correct scope
// gating. Rendering subsystems (memory, pipelines, command recording) live
// outside this package and bind their entry points through [RegisterProc].
//
// # API Model
//
// vc4vk intentionally exposes two API families:
//   - [Check] and [Probe]/[ProbeWith] for diagnostics: ask the hardware
//     what it can do without constructing driver objects
//   - [CreateInstance] and the object tree under it for driver use: every
//     object holds exactly what it negotiated at creation
//
// # Quick Check
//
// Validate that required hardware capabilities are available:
//
//	if err := vc4vk.Check(vc4vk.FeatureTiling, vc4vk.FeatureThreadedFS); err != nil {
//	    var ce *vc4vk.CapabilityError
//	    if errors.As(err, &ce) {
//	        log.Fatalf("hardware not ready: %s: %s", ce.Feature, ce.Reason)
//	    }
//	    log.Fatal(err)
//	}
//
// # Driver Objects
//
// Create an instance, pick the physical device, and negotiate a logical
// device:
//
//	inst, res := vc4vk.CreateInstance(&vc4vk.InstanceCreateInfo{
//	    EnabledExtensions: []string{"VK_KHR_surface"},
//	})
//	if res != vc4vk.Success {
//	    log.Fatalf("create instance: %s", res)
//	}
//	defer inst.Destroy()
//
//	var n uint32
//	inst.EnumeratePhysicalDevices(&n, nil)
//	phys := make([]*vc4vk.PhysicalDevice, n)
//	inst.EnumeratePhysicalDevices(&n, phys)
//
//	dev, res := phys[0].CreateDevice(&vc4vk.DeviceCreateInfo{
//	    QueueCreateInfos: []vc4vk.QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}},
//	})
//	if res != vc4vk.Success {
//	    log.Fatalf("create device: %s", res)
//	}
//	defer dev.Destroy()
//
// Every enumeration follows the count-then-fill contract: pass a nil slice
// to learn the total, then a sized slice to fetch; a short slice fills to
// capacity and reports [Incomplete].
//
// # Types
//
// [CapabilitySnapshot] records the probed hardware facts, established once
// per instance and immutable afterward.
//
// [Result] carries the status of every driver operation; errors are
// negative, [Incomplete] is informational.
//
// [CapabilityError] provides actionable diagnostics when a required
// capability is unavailable, including the capability name, a
// human-readable reason with remediation steps, and the underlying probe
// error if any.
package vc4vk
