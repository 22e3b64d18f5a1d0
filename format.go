package vc4vk

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the probed snapshot.
func (s *CapabilitySnapshot) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Device: %s\n", s.DevicePath)
	fmt.Fprintf(&b, "Chip: VC4 V3D %d.%d\n", s.ChipVersion/10, s.ChipVersion%10)
	b.WriteString("\n")

	b.WriteString("Capabilities:\n")
	writeSupport(&b, "  tiled framebuffers", s.HasTiling)
	writeSupport(&b, "  shader control flow", s.HasControlFlow)
	writeSupport(&b, "  ETC1 textures", s.HasETC1)
	writeSupport(&b, "  threaded fragment shaders", s.HasThreadedFS)
	writeSupport(&b, "  buffer purge advice", s.HasMadvise)
	writeSupport(&b, "  fixed render-list order", s.HasFixedRCLOrder)
	writeSupport(&b, "  performance counters", s.HasPerfmon)

	return b.String()
}

func writeSupport(b *strings.Builder, name string, supported bool) {
	status := "no"
	if supported {
		status = "yes"
	}
	fmt.Fprintf(b, "%s: %s\n", name, status)
}
