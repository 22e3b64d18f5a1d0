package vc4vk

import (
	"strings"
	"testing"
)

func TestCapabilitySnapshot_String(t *testing.T) {
	snap := &CapabilitySnapshot{
		DevicePath:    "/dev/dri/card0",
		ChipVersion:   21,
		HasTiling:     true,
		HasThreadedFS: true,
	}

	got := snap.String()

	for _, want := range []string{
		"Device: /dev/dri/card0",
		"Chip: VC4 V3D 2.1",
		"tiled framebuffers: yes",
		"threaded fragment shaders: yes",
		"performance counters: no",
		"shader control flow: no",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("String() missing %q in:\n%s", want, got)
		}
	}
}

func TestCapabilitySnapshot_StringAllSupported(t *testing.T) {
	got := fullSnapshot().String()
	if strings.Contains(got, ": no") {
		t.Errorf("full snapshot should report everything yes:\n%s", got)
	}
}
