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

import "math/bits"

const (
	// a bitmap node holding more than maxBitmapChildren children is
	// promoted to a dense dictArray
	maxBitmapChildren = 16

	// a dense dictArray whose population drops to arrayDemoteSize is
	// packed back into a bitmap node
	arrayDemoteSize = 8
)

// dictNode is one of *dictLeaf, *dictBitmap, *dictArray or
// *dictCollision. The hierarchy is closed; operations dispatch with
// exhaustive type switches.
type dictNode[K comparable, V any] interface {
	isDictNode()
}

type (
	// dictLeaf is a single entry, with the hash of its key cached.
	dictLeaf[K comparable, V any] struct {
		hash uint32
		key  K
		val  V
	}

	// dictBitmap is a sparse interior node with popcount compression:
	// bit d of bitmap is set iff digit d is occupied, and the child for
	// a set bit lives at children[popcount(bitmap & (bit-1))]. Children
	// are kept in ascending bit order.
	dictBitmap[K comparable, V any] struct {
		bitmap   uint32
		children []dictNode[K, V]
	}

	// dictArray is a dense interior node indexed directly by digit,
	// with nil slots allowed. size counts the non-nil children.
	dictArray[K comparable, V any] struct {
		children [branchFactor]dictNode[K, V]
		size     int
	}

	// dictCollision buckets two or more entries whose keys share a full
	// 32-bit hash. keys and vals are parallel.
	dictCollision[K comparable, V any] struct {
		hash uint32
		keys []K
		vals []V
	}
)

func (*dictLeaf[K, V]) isDictNode()      {}
func (*dictBitmap[K, V]) isDictNode()    {}
func (*dictArray[K, V]) isDictNode()     {}
func (*dictCollision[K, V]) isDictNode() {}

// digit extracts the 5-bit slice of hash that selects a child at the
// trie level with the given shift.
func digit(hash uint32, shift int) int {
	return int(hash>>shift) & digitMask
}

func bitpos(hash uint32, shift int) uint32 {
	return 1 << digit(hash, shift)
}

// index maps a bitmap bit to its position in the compact child array.
func (n *dictBitmap[K, V]) index(bit uint32) int {
	return bits.OnesCount32(n.bitmap & (bit - 1))
}

// dictGet looks key up in the subtree rooted at n.
func dictGet[K comparable, V any](n dictNode[K, V], shift int, hash uint32, key K) (V, bool) {
	var zero V

	switch n := n.(type) {
	case *dictLeaf[K, V]:
		if n.key == key {
			return n.val, true
		}
		return zero, false

	case *dictBitmap[K, V]:
		bit := bitpos(hash, shift)
		if n.bitmap&bit == 0 {
			return zero, false
		}
		return dictGet[K, V](n.children[n.index(bit)], shift+digitBits, hash, key)

	case *dictArray[K, V]:
		child := n.children[digit(hash, shift)]
		if child == nil {
			return zero, false
		}
		return dictGet[K, V](child, shift+digitBits, hash, key)

	case *dictCollision[K, V]:
		if n.hash != hash {
			return zero, false
		}
		for i, k := range n.keys {
			if k == key {
				return n.vals[i], true
			}
		}
		return zero, false

	default:
		panic("logic error, wrong node type")
	}
}

// dictAssoc returns the subtree with key bound to val, plus whether the
// binding is new (false means an existing key had its value replaced).
// The input subtree is never modified; nodes on the edited path are
// copied and all siblings are shared.
func dictAssoc[K comparable, V any](n dictNode[K, V], shift int, hash uint32, key K, val V) (dictNode[K, V], bool) {
	switch n := n.(type) {
	case *dictLeaf[K, V]:
		if n.key == key {
			return &dictLeaf[K, V]{hash: hash, key: key, val: val}, false
		}
		if n.hash == hash || shift >= hashBits {
			// Equal full hashes can no longer be told apart by
			// routing, bucket both entries.
			return &dictCollision[K, V]{
				hash: n.hash,
				keys: []K{n.key, key},
				vals: []V{n.val, val},
			}, true
		}
		// Hashes differ: push the existing leaf into a fresh bitmap
		// node at this level and associate the new entry into it.
		b := &dictBitmap[K, V]{
			bitmap:   bitpos(n.hash, shift),
			children: []dictNode[K, V]{n},
		}
		out, _ := dictAssoc[K, V](b, shift, hash, key, val)
		return out, true

	case *dictBitmap[K, V]:
		bit := bitpos(hash, shift)
		idx := n.index(bit)

		if n.bitmap&bit != 0 {
			child, added := dictAssoc(n.children[idx], shift+digitBits, hash, key, val)
			children := append(n.children[:0:0], n.children...)
			children[idx] = child
			return &dictBitmap[K, V]{bitmap: n.bitmap, children: children}, added
		}

		if len(n.children) < maxBitmapChildren {
			children := make([]dictNode[K, V], len(n.children)+1)
			copy(children, n.children[:idx])
			children[idx] = &dictLeaf[K, V]{hash: hash, key: key, val: val}
			copy(children[idx+1:], n.children[idx:])
			return &dictBitmap[K, V]{bitmap: n.bitmap | bit, children: children}, true
		}

		// Node is full, promote to a dense array node.
		a := &dictArray[K, V]{size: len(n.children) + 1}
		for d := 0; d < branchFactor; d++ {
			if bit := uint32(1) << d; n.bitmap&bit != 0 {
				a.children[d] = n.children[n.index(bit)]
			}
		}
		a.children[digit(hash, shift)] = &dictLeaf[K, V]{hash: hash, key: key, val: val}
		return a, true

	case *dictArray[K, V]:
		d := digit(hash, shift)
		out := &dictArray[K, V]{children: n.children, size: n.size}
		if n.children[d] == nil {
			out.children[d] = &dictLeaf[K, V]{hash: hash, key: key, val: val}
			out.size++
			return out, true
		}
		child, added := dictAssoc(n.children[d], shift+digitBits, hash, key, val)
		out.children[d] = child
		return out, added

	case *dictCollision[K, V]:
		if hash != n.hash {
			// A different hash can still be routed, wrap the bucket in
			// a bitmap node at this level and descend.
			b := &dictBitmap[K, V]{
				bitmap:   bitpos(n.hash, shift),
				children: []dictNode[K, V]{n},
			}
			return dictAssoc[K, V](b, shift, hash, key, val)
		}
		for i, k := range n.keys {
			if k == key {
				vals := append(n.vals[:0:0], n.vals...)
				vals[i] = val
				return &dictCollision[K, V]{hash: n.hash, keys: n.keys, vals: vals}, false
			}
		}
		return &dictCollision[K, V]{
			hash: n.hash,
			keys: append(append(n.keys[:0:0], n.keys...), key),
			vals: append(append(n.vals[:0:0], n.vals...), val),
		}, true

	default:
		panic("logic error, wrong node type")
	}
}

// dictRemove returns the subtree without key, plus whether a binding
// was removed. A nil result node means the subtree became empty. When
// nothing was removed the input node is returned as is, so callers can
// preserve handle identity by reference comparison.
func dictRemove[K comparable, V any](n dictNode[K, V], shift int, hash uint32, key K) (dictNode[K, V], bool) {
	switch n := n.(type) {
	case *dictLeaf[K, V]:
		if n.key == key {
			return nil, true
		}
		return n, false

	case *dictBitmap[K, V]:
		bit := bitpos(hash, shift)
		if n.bitmap&bit == 0 {
			return n, false
		}
		idx := n.index(bit)
		child, removed := dictRemove[K, V](n.children[idx], shift+digitBits, hash, key)
		if !removed {
			return n, false
		}
		if child == nil {
			bitmap := n.bitmap &^ bit
			if bitmap == 0 {
				return nil, true
			}
			children := make([]dictNode[K, V], len(n.children)-1)
			copy(children, n.children[:idx])
			copy(children[idx:], n.children[idx+1:])
			return &dictBitmap[K, V]{bitmap: bitmap, children: children}, true
		}
		children := append(n.children[:0:0], n.children...)
		children[idx] = child
		return &dictBitmap[K, V]{bitmap: n.bitmap, children: children}, true

	case *dictArray[K, V]:
		d := digit(hash, shift)
		if n.children[d] == nil {
			return n, false
		}
		child, removed := dictRemove[K, V](n.children[d], shift+digitBits, hash, key)
		if !removed {
			return n, false
		}
		if child != nil {
			out := &dictArray[K, V]{children: n.children, size: n.size}
			out.children[d] = child
			return out, true
		}
		if n.size-1 <= arrayDemoteSize {
			// Population fell to the threshold, pack the remaining
			// children back into a bitmap node.
			b := &dictBitmap[K, V]{
				children: make([]dictNode[K, V], 0, n.size-1),
			}
			for i, c := range n.children {
				if c == nil || i == d {
					continue
				}
				b.bitmap |= uint32(1) << i
				b.children = append(b.children, c)
			}
			return b, true
		}
		out := &dictArray[K, V]{children: n.children, size: n.size - 1}
		out.children[d] = nil
		return out, true

	case *dictCollision[K, V]:
		if hash != n.hash {
			return n, false
		}
		for i, k := range n.keys {
			if k != key {
				continue
			}
			if len(n.keys) == 2 {
				// One entry left, demote the bucket to a leaf.
				j := 1 - i
				return &dictLeaf[K, V]{hash: n.hash, key: n.keys[j], val: n.vals[j]}, true
			}
			keys := make([]K, 0, len(n.keys)-1)
			vals := make([]V, 0, len(n.vals)-1)
			keys = append(append(keys, n.keys[:i]...), n.keys[i+1:]...)
			vals = append(append(vals, n.vals[:i]...), n.vals[i+1:]...)
			return &dictCollision[K, V]{hash: n.hash, keys: keys, vals: vals}, true
		}
		return n, false

	default:
		panic("logic error, wrong node type")
	}
}

// dictWalk yields every binding of the subtree rooted at n in a
// pre-order walk over non-nil children. Returns false if the consumer
// stopped the iteration.
func dictWalk[K comparable, V any](n dictNode[K, V], yield func(K, V) bool) bool {
	switch n := n.(type) {
	case *dictLeaf[K, V]:
		return yield(n.key, n.val)

	case *dictBitmap[K, V]:
		for _, child := range n.children {
			if !dictWalk(child, yield) {
				return false
			}
		}
		return true

	case *dictArray[K, V]:
		for _, child := range n.children {
			if child == nil {
				continue
			}
			if !dictWalk(child, yield) {
				return false
			}
		}
		return true

	case *dictCollision[K, V]:
		for i := range n.keys {
			if !yield(n.keys[i], n.vals[i]) {
				return false
			}
		}
		return true

	default:
		panic("logic error, wrong node type")
	}
}
