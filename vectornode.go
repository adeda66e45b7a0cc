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

// vecNode is either a *vecBranch or a *vecLeaf. The hierarchy is closed;
// operations dispatch with exhaustive type switches.
type vecNode[T any] interface {
	isVecNode()
}

type (
	// vecBranch is an interior node. A branch at shift s routes index i
	// to child (i >> s) & digitMask. Children on the frontier of a
	// growing vector may be nil; slots at indices >= the vector length
	// are never consulted.
	vecBranch[T any] struct {
		children [branchFactor]vecNode[T]
	}

	// vecLeaf holds up to 32 elements at shift 0. Slots at or beyond
	// the vector length are unused and must not be observed.
	vecLeaf[T any] struct {
		slots [branchFactor]T
	}
)

func (*vecBranch[T]) isVecNode() {}
func (*vecLeaf[T]) isVecNode()   {}

// vecGet reads the element at index i from a tree of the given depth.
// Bounds are checked by the caller.
func vecGet[T any](root vecNode[T], depth, i int) T {
	n := root
	for shift := digitBits * (depth - 1); shift > 0; shift -= digitBits {
		branch, ok := n.(*vecBranch[T])
		if !ok {
			panic("logic error, wrong node type")
		}
		n = branch.children[(i>>shift)&digitMask]
	}
	leaf, ok := n.(*vecLeaf[T])
	if !ok {
		panic("logic error, wrong node type")
	}
	return leaf.slots[i&digitMask]
}

// vecSet returns a new tree with the element at index i replaced by
// item, path-copying from n down to the leaf. All siblings of the
// copied path are shared with the original tree. A nil n (or nil
// children along the way) grows fresh nodes, which is how an append
// builds the spine for a previously unoccupied index.
func vecSet[T any](n vecNode[T], shift, i int, item T) vecNode[T] {
	if shift == 0 {
		leaf := new(vecLeaf[T])
		if n != nil {
			*leaf = *n.(*vecLeaf[T])
		}
		leaf.slots[i&digitMask] = item
		return leaf
	}

	branch := new(vecBranch[T])
	if n != nil {
		*branch = *n.(*vecBranch[T])
	}
	slot := (i >> shift) & digitMask
	branch.children[slot] = vecSet(branch.children[slot], shift-digitBits, i, item)
	return branch
}

// vecWalk yields the elements of the subtree rooted at n in index
// order. base is the logical index of the subtree's first slot; length
// bounds the walk so stale slots beyond the last element are skipped.
// Returns false if the consumer stopped the iteration.
func vecWalk[T any](n vecNode[T], shift, base, length int, yield func(int, T) bool) bool {
	if n == nil {
		return true
	}

	if shift == 0 {
		leaf, ok := n.(*vecLeaf[T])
		if !ok {
			panic("logic error, wrong node type")
		}
		for j := range leaf.slots {
			i := base + j
			if i >= length {
				return true
			}
			if !yield(i, leaf.slots[j]) {
				return false
			}
		}
		return true
	}

	branch, ok := n.(*vecBranch[T])
	if !ok {
		panic("logic error, wrong node type")
	}
	for j, child := range branch.children {
		childBase := base + j<<shift
		if childBase >= length {
			return true
		}
		if !vecWalk(child, shift-digitBits, childBase, length, yield) {
			return false
		}
	}
	return true
}
