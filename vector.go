// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package immutable

import "iter"

// Vector is a persistent indexed sequence backed by a 32-way
// bit-partitioned trie. Indexed access, Update, Append and RemoveLast
// run in O(log32 n); every updating operation returns a new Vector that
// shares all untouched subtrees with the receiver.
//
// A Vector must not be modified after publication and therefore may be
// read from any number of goroutines concurrently.
type Vector[T any] struct {
	length int
	depth  int
	root   vecNode[T]
}

// NewVector returns the empty vector.
func NewVector[T any]() *Vector[T] {
	return &Vector[T]{depth: 1}
}

// VectorOf returns a vector holding items in order.
func VectorOf[T any](items ...T) *Vector[T] {
	v := NewVector[T]()
	for _, item := range items {
		v = v.Append(item)
	}
	return v
}

// VectorFrom returns a vector holding the elements of seq in order.
func VectorFrom[T any](seq iter.Seq[T]) *Vector[T] {
	return NewVector[T]().Concat(seq)
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int {
	return v.length
}

// IsEmpty reports whether the vector has no elements.
func (v *Vector[T]) IsEmpty() bool {
	return v.length == 0
}

// Get returns the element at index i, or ErrIndexOutOfRange if i is
// negative or not less than the length.
func (v *Vector[T]) Get(i int) (T, error) {
	if i < 0 || i >= v.length {
		var zero T
		return zero, ErrIndexOutOfRange
	}
	return vecGet[T](v.root, v.depth, i), nil
}

// First returns the element at index 0, or ErrEmptyVector.
func (v *Vector[T]) First() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, ErrEmptyVector
	}
	return vecGet[T](v.root, v.depth, 0), nil
}

// Last returns the element at the highest index, or ErrEmptyVector.
func (v *Vector[T]) Last() (T, error) {
	if v.length == 0 {
		var zero T
		return zero, ErrEmptyVector
	}
	return vecGet[T](v.root, v.depth, v.length-1), nil
}

// Update returns a new vector with the element at index i replaced by
// item. The receiver is unchanged. Returns ErrIndexOutOfRange if i is
// negative or not less than the length.
func (v *Vector[T]) Update(i int, item T) (*Vector[T], error) {
	if i < 0 || i >= v.length {
		return nil, ErrIndexOutOfRange
	}
	root := vecSet(v.root, digitBits*(v.depth-1), i, item)
	return &Vector[T]{length: v.length, depth: v.depth, root: root}, nil
}

// Append returns a new vector with item placed at index Len(). The
// receiver is unchanged.
func (v *Vector[T]) Append(item T) *Vector[T] {
	// A saturated root (length == 32^depth) gets wrapped in a new
	// branch: slot 0 is the old root, slot 1 a fresh spine down to the
	// leaf holding item.
	if v.length == 1<<(digitBits*v.depth) {
		root := new(vecBranch[T])
		root.children[0] = v.root
		root.children[1] = vecSet(nil, digitBits*(v.depth-1), v.length, item)
		return &Vector[T]{length: v.length + 1, depth: v.depth + 1, root: root}
	}

	root := vecSet(v.root, digitBits*(v.depth-1), v.length, item)
	return &Vector[T]{length: v.length + 1, depth: v.depth, root: root}
}

// RemoveLast returns a new vector without the element at the highest
// index, or ErrEmptyVector if the vector has no elements. The vacated
// slot is zeroed so the removed element does not stay reachable; the
// tree depth is not compacted.
func (v *Vector[T]) RemoveLast() (*Vector[T], error) {
	if v.length == 0 {
		return nil, ErrEmptyVector
	}
	var zero T
	root := vecSet(v.root, digitBits*(v.depth-1), v.length-1, zero)
	return &Vector[T]{length: v.length - 1, depth: v.depth, root: root}, nil
}

// Concat returns a new vector with the elements of seq appended in
// order. The receiver is unchanged.
func (v *Vector[T]) Concat(seq iter.Seq[T]) *Vector[T] {
	out := v
	for item := range seq {
		out = out.Append(item)
	}
	return out
}

// Values returns an iterator over the elements in index order. The
// iterator captures the handle, so it may be restarted and always
// yields the same sequence.
func (v *Vector[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		vecWalk(v.root, digitBits*(v.depth-1), 0, v.length, func(_ int, item T) bool {
			return yield(item)
		})
	}
}

// All returns an iterator over index/element pairs in index order.
func (v *Vector[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		vecWalk(v.root, digitBits*(v.depth-1), 0, v.length, yield)
	}
}

// EqualFunc reports whether both vectors hold equal elements in the
// same order, comparing elements with eq.
func (v *Vector[T]) EqualFunc(other *Vector[T], eq func(a, b T) bool) bool {
	if v.length != other.length {
		return false
	}
	equal := true
	vecWalk(v.root, digitBits*(v.depth-1), 0, v.length, func(i int, item T) bool {
		if !eq(item, vecGet[T](other.root, other.depth, i)) {
			equal = false
			return false
		}
		return true
	})
	return equal
}

// VectorEqual reports whether both vectors hold the same elements in
// the same order.
func VectorEqual[T comparable](a, b *Vector[T]) bool {
	return a.EqualFunc(b, func(x, y T) bool { return x == y })
}
