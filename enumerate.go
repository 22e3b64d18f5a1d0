package vc4vk

// enumerate implements the count-then-fill contract shared by every listing
// operation in this API family.
//
// With a nil output slice, the total item count is written to count and the
// call reports Success without doing anything else. With an output slice,
// min(total, capacity) items are copied in table order, count is overwritten
// with the number actually written, and the call reports Incomplete when the
// capacity was too small for the full table. Capacity is the caller-declared
// count, clamped to len(out) so an undersized slice can never be overrun.
//
// Repeated calls with the same capacity and unchanged state produce
// identical output in identical order.
func enumerate[T any](items []T, count *uint32, out []T) Result {
	if count == nil {
		return ErrorValidationFailed
	}

	if out == nil {
		*count = uint32(len(items))
		return Success
	}

	capacity := int(*count)
	if capacity > len(out) {
		capacity = len(out)
	}

	written := len(items)
	if written > capacity {
		written = capacity
	}
	copy(out[:written], items[:written])
	*count = uint32(written)

	if capacity < len(items) {
		return Incomplete
	}
	return Success
}
