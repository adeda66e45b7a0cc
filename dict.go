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

// Dict is a persistent map backed by a hash array mapped trie. Lookup,
// Set and Delete run in O(log32 n); every updating operation returns a
// new Dict that shares all untouched subtrees with the receiver.
//
// Keys are compared with == and routed by the 32-bit hash produced by
// the Hasher the Dict was constructed with. A Dict must not be modified
// after publication and therefore may be read from any number of
// goroutines concurrently.
type Dict[K comparable, V any] struct {
	hash Hasher[K]
	size int
	root dictNode[K, V]
}

// NewDict returns the empty dictionary routing on hash.
func NewDict[K comparable, V any](hash Hasher[K]) *Dict[K, V] {
	return &Dict[K, V]{hash: hash}
}

// DictFromMap returns a dictionary holding every binding of m.
func DictFromMap[K comparable, V any](hash Hasher[K], m map[K]V) *Dict[K, V] {
	d := NewDict[K, V](hash)
	for k, v := range m {
		d = d.Set(k, v)
	}
	return d
}

// DictFromPairs returns a dictionary binding keys[i] to values[i],
// stopping when either slice is exhausted. Later duplicates of a key
// replace earlier bindings.
func DictFromPairs[K comparable, V any](hash Hasher[K], keys []K, values []V) *Dict[K, V] {
	d := NewDict[K, V](hash)
	for i, k := range keys {
		if i >= len(values) {
			break
		}
		d = d.Set(k, values[i])
	}
	return d
}

// Len returns the number of bindings.
func (d *Dict[K, V]) Len() int {
	return d.size
}

// IsEmpty reports whether the dictionary has no bindings.
func (d *Dict[K, V]) IsEmpty() bool {
	return d.size == 0
}

// ContainsKey reports whether key is bound.
func (d *Dict[K, V]) ContainsKey(key K) bool {
	_, ok := d.Get(key)
	return ok
}

// Get returns the value bound to key. The second return value is false
// if key is absent.
func (d *Dict[K, V]) Get(key K) (V, bool) {
	if d.root == nil {
		var zero V
		return zero, false
	}
	return dictGet[K, V](d.root, 0, d.hash(key), key)
}

// Set returns a new dictionary with key bound to value, replacing any
// existing binding for key. The receiver is unchanged.
func (d *Dict[K, V]) Set(key K, value V) *Dict[K, V] {
	hash := d.hash(key)

	if d.root == nil {
		// First binding: a bitmap root holding a single leaf.
		root := &dictBitmap[K, V]{
			bitmap:   bitpos(hash, 0),
			children: []dictNode[K, V]{&dictLeaf[K, V]{hash: hash, key: key, val: value}},
		}
		return &Dict[K, V]{hash: d.hash, size: 1, root: root}
	}

	root, added := dictAssoc(d.root, 0, hash, key, value)
	size := d.size
	if added {
		size++
	}
	return &Dict[K, V]{hash: d.hash, size: size, root: root}
}

// Delete returns a new dictionary without key. If key is absent the
// receiver itself is returned, so callers can detect "no change" by
// reference comparison.
func (d *Dict[K, V]) Delete(key K) *Dict[K, V] {
	if d.root == nil {
		return d
	}
	root, removed := dictRemove[K, V](d.root, 0, d.hash(key), key)
	if !removed {
		return d
	}
	return &Dict[K, V]{hash: d.hash, size: d.size - 1, root: root}
}

// Merge returns a new dictionary holding the bindings of both d and
// other; on a key bound in both, other's value wins. Merging an empty
// dictionary returns the receiver unchanged.
func (d *Dict[K, V]) Merge(other *Dict[K, V]) *Dict[K, V] {
	if other == nil || other.size == 0 {
		return d
	}
	out := d
	other.ForEach(func(k K, v V) {
		out = out.Set(k, v)
	})
	return out
}

// ForEach invokes fn once per binding, in traversal order.
func (d *Dict[K, V]) ForEach(fn func(K, V)) {
	if d.root == nil {
		return
	}
	dictWalk(d.root, func(k K, v V) bool {
		fn(k, v)
		return true
	})
}

// All returns an iterator over key/value pairs. The order is
// unspecified but stable for a given handle; restarting the iterator
// yields the same sequence.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if d.root == nil {
			return
		}
		dictWalk(d.root, yield)
	}
}

// Keys returns an iterator over the keys, in the same order as All.
func (d *Dict[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		if d.root == nil {
			return
		}
		dictWalk(d.root, func(k K, _ V) bool {
			return yield(k)
		})
	}
}

// Values returns an iterator over the values, in the same order as All.
func (d *Dict[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		if d.root == nil {
			return
		}
		dictWalk(d.root, func(_ K, v V) bool {
			return yield(v)
		})
	}
}
