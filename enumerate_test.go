package vc4vk

import (
	"reflect"
	"testing"
)

func TestEnumerate_CountQuery(t *testing.T) {
	items := []int{10, 20, 30}

	var count uint32 = 999
	if res := enumerate(items, &count, nil); res != Success {
		t.Fatalf("count query = %v, want Success", res)
	}
	if count != 3 {
		t.Fatalf("count = %d, want 3", count)
	}
}

func TestEnumerate_Fill(t *testing.T) {
	items := []int{10, 20, 30}

	tests := []struct {
		name      string
		capacity  uint32
		wantRes   Result
		wantCount uint32
		wantItems []int
	}{
		{"exact", 3, Success, 3, []int{10, 20, 30}},
		{"oversized", 5, Success, 3, []int{10, 20, 30}},
		{"truncated", 2, Incomplete, 2, []int{10, 20}},
		{"single", 1, Incomplete, 1, []int{10}},
		{"zero", 0, Incomplete, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count := tt.capacity
			out := make([]int, tt.capacity)
			res := enumerate(items, &count, out)
			if res != tt.wantRes {
				t.Errorf("result = %v, want %v", res, tt.wantRes)
			}
			if count != tt.wantCount {
				t.Errorf("count = %d, want %d", count, tt.wantCount)
			}
			got := out[:count]
			if len(tt.wantItems) == 0 {
				if len(got) != 0 {
					t.Errorf("items = %v, want none", got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.wantItems) {
				t.Errorf("items = %v, want %v", got, tt.wantItems)
			}
		})
	}
}

func TestEnumerate_CapacityBelowSliceLength(t *testing.T) {
	// The declared capacity wins when it is smaller than the slice.
	items := []int{10, 20, 30}
	var count uint32 = 2
	out := make([]int, 3)
	res := enumerate(items, &count, out)
	if res != Incomplete {
		t.Fatalf("result = %v, want Incomplete", res)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}
	if out[2] != 0 {
		t.Fatalf("out[2] = %d, want untouched zero", out[2])
	}
}

func TestEnumerate_NilCount(t *testing.T) {
	if res := enumerate([]int{1}, nil, nil); res != ErrorValidationFailed {
		t.Fatalf("nil count = %v, want ErrorValidationFailed", res)
	}
}

func TestEnumerate_Empty(t *testing.T) {
	var count uint32
	if res := enumerate([]int(nil), &count, nil); res != Success {
		t.Fatalf("empty count query = %v, want Success", res)
	}
	if count != 0 {
		t.Fatalf("count = %d, want 0", count)
	}

	count = 4
	out := make([]int, 4)
	if res := enumerate([]int(nil), &count, out); res != Success {
		t.Fatalf("empty fill = %v, want Success", res)
	}
	if count != 0 {
		t.Fatalf("count after fill = %d, want 0", count)
	}
}

func TestEnumerate_Idempotent(t *testing.T) {
	// Two identical calls observe identical results.
	items := []string{"a", "b"}
	for i := 0; i < 2; i++ {
		var count uint32
		if res := enumerate(items, &count, nil); res != Success || count != 2 {
			t.Fatalf("call %d: res=%v count=%d", i, res, count)
		}
	}
}
