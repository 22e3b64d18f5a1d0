package vc4vk

import (
	"fmt"
	"sync"
)

// AllocationScope classifies the host allocations the driver makes on
// behalf of the application. The scope decides which exhaustion code a
// refused allocation produces: instance and queue-array refusals report
// ErrorOutOfHostMemory, device refusals report ErrorTooManyObjects.
type AllocationScope int

const (
	// AllocationScopeInstance covers the Instance object itself.
	AllocationScopeInstance AllocationScope = iota
	// AllocationScopeDevice covers a logical Device object.
	AllocationScopeDevice
	// AllocationScopeObject covers one per-family queue array.
	AllocationScopeObject
)

var allocationScopeNames = map[AllocationScope]string{
	AllocationScopeInstance: "instance",
	AllocationScopeDevice:   "device",
	AllocationScopeObject:   "object",
}

func (s AllocationScope) String() string {
	if name, ok := allocationScopeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("AllocationScope(%d)", int(s))
}

// Allocator is the bookkeeping hook for tracked host allocations. The
// driver asks before each tracked allocation and reports the matching
// release on teardown; an Allocator that refuses makes the operation fail
// with the scope's resource-exhaustion code and no partial object.
type Allocator interface {
	Allocate(scope AllocationScope) bool
	Free(scope AllocationScope)
}

// hostAllocator is the default: it admits everything and keeps no books.
type hostAllocator struct{}

func (hostAllocator) Allocate(AllocationScope) bool { return true }
func (hostAllocator) Free(AllocationScope)          {}

var defaultAllocator Allocator = hostAllocator{}

// CountingAllocator tracks outstanding allocations per scope and can be
// primed to refuse a scope's requests. It exists for lifecycle tests and
// leak harnesses; production code runs with the default allocator.
type CountingAllocator struct {
	mu          sync.Mutex
	outstanding map[AllocationScope]int
	refuse      map[AllocationScope]bool
}

// NewCountingAllocator returns an empty, admitting CountingAllocator.
func NewCountingAllocator() *CountingAllocator {
	return &CountingAllocator{
		outstanding: make(map[AllocationScope]int),
		refuse:      make(map[AllocationScope]bool),
	}
}

// Allocate admits the request unless the scope was primed for refusal.
func (a *CountingAllocator) Allocate(scope AllocationScope) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.refuse[scope] {
		return false
	}
	a.outstanding[scope]++
	return true
}

// Free records the release of one allocation in the scope.
func (a *CountingAllocator) Free(scope AllocationScope) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.outstanding[scope]--
}

// Outstanding returns the number of live allocations in the scope.
func (a *CountingAllocator) Outstanding(scope AllocationScope) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outstanding[scope]
}

// TotalOutstanding returns the number of live allocations across all scopes.
func (a *CountingAllocator) TotalOutstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for _, n := range a.outstanding {
		total += n
	}
	return total
}

// Refuse primes or clears refusal of a scope's future requests.
func (a *CountingAllocator) Refuse(scope AllocationScope, refuse bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.refuse[scope] = refuse
}
