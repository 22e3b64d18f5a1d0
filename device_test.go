package vc4vk

import "testing"

func testPhysicalDevice(t *testing.T, opts ...InstanceOption) *PhysicalDevice {
	t.Helper()
	inst := newTestInstance(t, opts...)
	var count uint32
	inst.EnumeratePhysicalDevices(&count, nil)
	devs := make([]*PhysicalDevice, count)
	inst.EnumeratePhysicalDevices(&count, devs)
	return devs[0]
}

func TestPhysicalDevice_Properties(t *testing.T) {
	phys := testPhysicalDevice(t)

	props, res := phys.Properties()
	if res != Success {
		t.Fatalf("Properties() = %v, want Success", res)
	}
	if props.VendorID != 0x14E4 {
		t.Errorf("VendorID = %#x, want 0x14E4", props.VendorID)
	}
	if props.DeviceName != "VideoCore IV HW" {
		t.Errorf("DeviceName = %q", props.DeviceName)
	}
	if props.DeviceType != DeviceTypeIntegratedGPU {
		t.Errorf("DeviceType = %v, want integrated GPU", props.DeviceType)
	}
	if props.DriverVersion != 1 {
		t.Errorf("DriverVersion = %d, want 1", props.DriverVersion)
	}
	if VersionMajor(props.APIVersion) != 1 || VersionMinor(props.APIVersion) != 1 {
		t.Errorf("APIVersion = %#x, want 1.1.x", props.APIVersion)
	}
	if !props.SparseProperties.ResidencyNonResidentStrict {
		t.Error("sparse properties must report the fixed profile")
	}

	// Two reads observe identical records.
	again, _ := phys.Properties()
	if again != props {
		t.Error("Properties() must be stable across calls")
	}
}

func TestPhysicalDevice_Features(t *testing.T) {
	phys := testPhysicalDevice(t)

	feats, res := phys.Features()
	if res != Success {
		t.Fatalf("Features() = %v, want Success", res)
	}
	if !feats.WideLines || !feats.FullDrawIndexUint32 {
		t.Error("expected wideLines and fullDrawIndexUint32 supported")
	}
	if feats.GeometryShader || feats.TessellationShader {
		t.Error("geometry and tessellation shaders must be unsupported")
	}
}

func TestPhysicalDevice_QueueFamilyProperties(t *testing.T) {
	phys := testPhysicalDevice(t)

	var count uint32
	if res := phys.QueueFamilyProperties(&count, nil); res != Success {
		t.Fatalf("count query = %v, want Success", res)
	}
	if count != 1 {
		t.Fatalf("count = %d, want 1", count)
	}

	fams := make([]QueueFamilyProperties, count)
	if res := phys.QueueFamilyProperties(&count, fams); res != Success {
		t.Fatalf("fill = %v, want Success", res)
	}
	fam := fams[0]
	want := QueueGraphics | QueueCompute | QueueTransfer
	if fam.QueueFlags != want {
		t.Errorf("QueueFlags = %b, want graphics|compute|transfer", fam.QueueFlags)
	}
	if fam.QueueCount != 1 {
		t.Errorf("QueueCount = %d, want 1", fam.QueueCount)
	}
	if fam.TimestampValidBits != 64 {
		t.Errorf("TimestampValidBits = %d, want 64", fam.TimestampValidBits)
	}
	if g := fam.MinImageTransferGranularity; g.Width != 1 || g.Height != 1 || g.Depth != 1 {
		t.Errorf("granularity = %+v, want 1x1x1", g)
	}
}

func TestPhysicalDevice_EnumerateExtensionProperties(t *testing.T) {
	phys := testPhysicalDevice(t)

	t.Run("layer name rejected", func(t *testing.T) {
		var count uint32
		if res := phys.EnumerateExtensionProperties("VK_LAYER_fake", &count, nil); res != ErrorLayerNotPresent {
			t.Fatalf("result = %v, want ErrorLayerNotPresent", res)
		}
	})

	t.Run("count and fill", func(t *testing.T) {
		var count uint32
		if res := phys.EnumerateExtensionProperties("", &count, nil); res != Success {
			t.Fatalf("count query = %v, want Success", res)
		}
		if count != 2 {
			t.Fatalf("count = %d, want 2", count)
		}
		exts := make([]ExtensionProperties, count)
		if res := phys.EnumerateExtensionProperties("", &count, exts); res != Success {
			t.Fatalf("fill = %v, want Success", res)
		}
		if exts[0].Name != "VK_KHR_swapchain" {
			t.Fatalf("extensions = %v", exts)
		}
	})
}

func TestPhysicalDevice_EnumerateLayerProperties(t *testing.T) {
	phys := testPhysicalDevice(t)
	var count uint32 = 7
	if res := phys.EnumerateLayerProperties(&count, nil); res != Success {
		t.Fatalf("result = %v, want Success", res)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}
}

func TestPhysicalDevice_SurfaceSupport(t *testing.T) {
	phys := testPhysicalDevice(t)

	t.Run("valid", func(t *testing.T) {
		ok, res := phys.SurfaceSupport(0, Surface(1))
		if res != Success || !ok {
			t.Fatalf("SurfaceSupport = (%v, %v), want (true, Success)", ok, res)
		}
	})

	t.Run("null surface", func(t *testing.T) {
		if _, res := phys.SurfaceSupport(0, 0); res != ErrorValidationFailed {
			t.Fatalf("result = %v, want ErrorValidationFailed", res)
		}
	})

	t.Run("bad family", func(t *testing.T) {
		if _, res := phys.SurfaceSupport(1, Surface(1)); res != ErrorValidationFailed {
			t.Fatalf("result = %v, want ErrorValidationFailed", res)
		}
	})
}

func TestCreateDevice_ValidationOrder(t *testing.T) {
	phys := testPhysicalDevice(t)

	// An unknown extension outranks an unsupported feature, which outranks a
	// malformed queue request.
	badEverything := &DeviceCreateInfo{
		QueueCreateInfos:  []QueueCreateInfo{{FamilyIndex: 9, QueueCount: 1}},
		EnabledExtensions: []string{"VK_EXT_nope"},
		EnabledFeatures:   &PhysicalDeviceFeatures{GeometryShader: true},
	}
	if _, res := phys.CreateDevice(badEverything); res != ErrorExtensionNotPresent {
		t.Fatalf("result = %v, want ErrorExtensionNotPresent", res)
	}

	badEverything.EnabledExtensions = nil
	if _, res := phys.CreateDevice(badEverything); res != ErrorFeatureNotPresent {
		t.Fatalf("result = %v, want ErrorFeatureNotPresent", res)
	}

	badEverything.EnabledFeatures = nil
	if _, res := phys.CreateDevice(badEverything); res != ErrorValidationFailed {
		t.Fatalf("result = %v, want ErrorValidationFailed", res)
	}
}

func TestCreateDevice_QueueValidation(t *testing.T) {
	phys := testPhysicalDevice(t)

	tests := []struct {
		name  string
		infos []QueueCreateInfo
		want  Result
	}{
		{"none requested", nil, Success},
		{"one queue", []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}}, Success},
		{"several queues", []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 3}}, Success},
		{"family out of range", []QueueCreateInfo{{FamilyIndex: 1, QueueCount: 1}}, ErrorValidationFailed},
		{"zero count", []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 0}}, ErrorValidationFailed},
		{"duplicate family", []QueueCreateInfo{
			{FamilyIndex: 0, QueueCount: 1},
			{FamilyIndex: 0, QueueCount: 1},
		}, ErrorValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, res := phys.CreateDevice(&DeviceCreateInfo{QueueCreateInfos: tt.infos})
			if res != tt.want {
				t.Fatalf("result = %v, want %v", res, tt.want)
			}
			if dev != nil {
				dev.Destroy()
			}
		})
	}
}

func TestCreateDevice_FeatureGating(t *testing.T) {
	phys := testPhysicalDevice(t)

	t.Run("supported subset", func(t *testing.T) {
		dev, res := phys.CreateDevice(&DeviceCreateInfo{
			EnabledFeatures: &PhysicalDeviceFeatures{WideLines: true, LogicOp: true},
		})
		if res != Success {
			t.Fatalf("result = %v, want Success", res)
		}
		defer dev.Destroy()
		if got := dev.EnabledFeatures(); !got.WideLines || !got.LogicOp || got.LargePoints {
			t.Fatalf("EnabledFeatures() = %+v", got)
		}
	})

	t.Run("unsupported bit", func(t *testing.T) {
		dev, res := phys.CreateDevice(&DeviceCreateInfo{
			EnabledFeatures: &PhysicalDeviceFeatures{WideLines: true, TessellationShader: true},
		})
		if res != ErrorFeatureNotPresent {
			t.Fatalf("result = %v, want ErrorFeatureNotPresent", res)
		}
		if dev != nil {
			t.Fatal("device should be nil on failure")
		}
	})

	t.Run("nil features requests nothing", func(t *testing.T) {
		dev, res := phys.CreateDevice(&DeviceCreateInfo{})
		if res != Success {
			t.Fatalf("result = %v, want Success", res)
		}
		defer dev.Destroy()
		if dev.EnabledFeatures() != (PhysicalDeviceFeatures{}) {
			t.Fatal("no features should be enabled")
		}
	})
}

func TestCreateDevice_AllocatorRefusal(t *testing.T) {
	t.Run("device refused", func(t *testing.T) {
		alloc := NewCountingAllocator()
		phys := testPhysicalDevice(t, WithAllocator(alloc))
		alloc.Refuse(AllocationScopeDevice, true)

		dev, res := phys.CreateDevice(&DeviceCreateInfo{
			QueueCreateInfos: []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}},
		})
		if res != ErrorTooManyObjects {
			t.Fatalf("result = %v, want ErrorTooManyObjects", res)
		}
		if dev != nil {
			t.Fatal("device should be nil on failure")
		}
		if alloc.Outstanding(AllocationScopeDevice) != 0 {
			t.Fatal("refused device must leave no allocation behind")
		}
	})

	t.Run("queue array refused", func(t *testing.T) {
		alloc := NewCountingAllocator()
		phys := testPhysicalDevice(t, WithAllocator(alloc))
		alloc.Refuse(AllocationScopeObject, true)

		dev, res := phys.CreateDevice(&DeviceCreateInfo{
			QueueCreateInfos: []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}},
		})
		if res != ErrorOutOfHostMemory {
			t.Fatalf("result = %v, want ErrorOutOfHostMemory", res)
		}
		if dev != nil {
			t.Fatal("device should be nil on failure")
		}
		if alloc.Outstanding(AllocationScopeDevice) != 0 || alloc.Outstanding(AllocationScopeObject) != 0 {
			t.Fatal("failed creation must roll back the device allocation")
		}
	})
}

func TestDevice_Lifecycle(t *testing.T) {
	alloc := NewCountingAllocator()
	phys := testPhysicalDevice(t, WithAllocator(alloc))

	dev, res := phys.CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos:  []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}},
		EnabledExtensions: []string{"VK_KHR_swapchain"},
	})
	if res != Success {
		t.Fatalf("CreateDevice = %v, want Success", res)
	}
	if dev.PhysicalDevice() != phys {
		t.Fatal("device must point back at its physical device")
	}
	if exts := dev.EnabledExtensions(); len(exts) != 1 || exts[0] != "VK_KHR_swapchain" {
		t.Fatalf("EnabledExtensions() = %v", exts)
	}
	if alloc.Outstanding(AllocationScopeDevice) != 1 || alloc.Outstanding(AllocationScopeObject) != 1 {
		t.Fatalf("allocations = device:%d object:%d, want 1 and 1",
			alloc.Outstanding(AllocationScopeDevice), alloc.Outstanding(AllocationScopeObject))
	}

	dev.Destroy()
	if alloc.Outstanding(AllocationScopeDevice) != 0 || alloc.Outstanding(AllocationScopeObject) != 0 {
		t.Fatal("Destroy must release the device and its queue arrays")
	}

	// Destroy is idempotent.
	dev.Destroy()
	if alloc.Outstanding(AllocationScopeDevice) != 0 || alloc.Outstanding(AllocationScopeObject) != 0 {
		t.Fatal("second Destroy must not double-free")
	}
}

func TestDevice_MultiQueueLifecycle(t *testing.T) {
	alloc := NewCountingAllocator()
	phys := testPhysicalDevice(t, WithAllocator(alloc))

	dev, res := phys.CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 3}},
	})
	if res != Success {
		t.Fatalf("CreateDevice = %v, want Success", res)
	}

	for i := uint32(0); i < 3; i++ {
		q, res := dev.Queue(0, i)
		if res != Success {
			t.Fatalf("Queue(0,%d) = %v, want Success", i, res)
		}
		if q.QueueIndex() != i {
			t.Fatalf("QueueIndex() = %d, want %d", q.QueueIndex(), i)
		}
		if q.lastEmitSeqno != 0 {
			t.Fatalf("queue %d emission counter = %d, want 0", i, q.lastEmitSeqno)
		}
	}
	if _, res := dev.Queue(0, 3); res != ErrorValidationFailed {
		t.Fatalf("Queue(0,3) = %v, want ErrorValidationFailed", res)
	}

	dev.Destroy()
	if n := alloc.Outstanding(AllocationScopeDevice) + alloc.Outstanding(AllocationScopeObject); n != 0 {
		t.Fatalf("outstanding device allocations after Destroy = %d, want 0", n)
	}
}

func TestDevice_Queue(t *testing.T) {
	phys := testPhysicalDevice(t)

	dev, res := phys.CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1}},
	})
	if res != Success {
		t.Fatalf("CreateDevice = %v, want Success", res)
	}
	defer dev.Destroy()

	q, res := dev.Queue(0, 0)
	if res != Success {
		t.Fatalf("Queue(0,0) = %v, want Success", res)
	}
	if q.FamilyIndex() != 0 || q.QueueIndex() != 0 {
		t.Fatalf("queue identity = (%d,%d), want (0,0)", q.FamilyIndex(), q.QueueIndex())
	}
	if q.Device() != dev {
		t.Fatal("queue must point back at its device")
	}

	again, _ := dev.Queue(0, 0)
	if again != q {
		t.Fatal("repeated Queue() must return the same handle")
	}

	t.Run("bad family", func(t *testing.T) {
		if _, res := dev.Queue(1, 0); res != ErrorValidationFailed {
			t.Fatalf("result = %v, want ErrorValidationFailed", res)
		}
	})

	t.Run("bad index", func(t *testing.T) {
		if _, res := dev.Queue(0, 1); res != ErrorValidationFailed {
			t.Fatalf("result = %v, want ErrorValidationFailed", res)
		}
	})
}

func TestDevice_QueueUnrequestedFamily(t *testing.T) {
	phys := testPhysicalDevice(t)

	dev, res := phys.CreateDevice(&DeviceCreateInfo{})
	if res != Success {
		t.Fatalf("CreateDevice = %v, want Success", res)
	}
	defer dev.Destroy()

	if _, res := dev.Queue(0, 0); res != ErrorValidationFailed {
		t.Fatalf("result = %v, want ErrorValidationFailed", res)
	}
}

func TestDevice_QueueNonDefaultFlags(t *testing.T) {
	phys := testPhysicalDevice(t)

	dev, res := phys.CreateDevice(&DeviceCreateInfo{
		QueueCreateInfos: []QueueCreateInfo{{FamilyIndex: 0, QueueCount: 1, Flags: 1}},
	})
	if res != Success {
		t.Fatalf("CreateDevice = %v, want Success", res)
	}
	defer dev.Destroy()

	// Queues created with non-default flags are not retrievable through the
	// plain accessor.
	if _, res := dev.Queue(0, 0); res != ErrorValidationFailed {
		t.Fatalf("result = %v, want ErrorValidationFailed", res)
	}
}
