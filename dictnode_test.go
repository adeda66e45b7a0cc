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

import (
	"fmt"
	"math/bits"
	"testing"
)

func TestDigit(t *testing.T) {
	t.Parallel()

	if got := digit(0xffffffff, 0); got != 31 {
		t.Fatalf("digit(all-ones, 0) = %d", got)
	}
	if got := digit(1<<7, 5); got != 4 {
		t.Fatalf("digit(1<<7, 5) = %d", got)
	}
	// shift 30 consumes the top two hash bits only
	if got := digit(0xc0000000, 30); got != 3 {
		t.Fatalf("digit(0xc0000000, 30) = %d", got)
	}
	if got := bitpos(0, 0); got != 1 {
		t.Fatalf("bitpos(0, 0) = %#x", got)
	}
}

func TestBitmapIndex(t *testing.T) {
	t.Parallel()

	n := &dictBitmap[string, int]{bitmap: 1<<3 | 1<<8 | 1<<20}
	if got := n.index(1 << 3); got != 0 {
		t.Fatalf("index(bit 3) = %d", got)
	}
	if got := n.index(1 << 8); got != 1 {
		t.Fatalf("index(bit 8) = %d", got)
	}
	if got := n.index(1 << 20); got != 2 {
		t.Fatalf("index(bit 20) = %d", got)
	}
}

// checkDictNode walks the subtree and verifies the structural
// invariants of every node variant. shift tracks the trie level, so
// leaf and bucket placement can be checked against their hashes.
func checkDictNode[K comparable, V any](t *testing.T, n dictNode[K, V], shift int, route func(uint32) bool) int {
	t.Helper()

	switch n := n.(type) {
	case *dictLeaf[K, V]:
		if !route(n.hash) {
			t.Fatalf("leaf with hash %#x reached via the wrong path", n.hash)
		}
		return 1

	case *dictBitmap[K, V]:
		if bits.OnesCount32(n.bitmap) != len(n.children) {
			t.Fatalf("bitmap popcount %d != %d children", bits.OnesCount32(n.bitmap), len(n.children))
		}
		if len(n.children) == 0 {
			t.Fatal("empty bitmap node survived")
		}
		count := 0
		for d := 0; d < branchFactor; d++ {
			bit := uint32(1) << d
			if n.bitmap&bit == 0 {
				continue
			}
			child := n.children[n.index(bit)]
			childRoute := func(h uint32) bool {
				return digit(h, shift) == d && route(h)
			}
			count += checkDictNode[K, V](t, child, shift+digitBits, childRoute)
		}
		return count

	case *dictArray[K, V]:
		nonNil := 0
		count := 0
		for d, child := range n.children {
			if child == nil {
				continue
			}
			nonNil++
			d := d
			childRoute := func(h uint32) bool {
				return digit(h, shift) == d && route(h)
			}
			count += checkDictNode[K, V](t, child, shift+digitBits, childRoute)
		}
		if nonNil != n.size {
			t.Fatalf("array node size %d != %d non-nil children", n.size, nonNil)
		}
		// promotion installs 17 children, deletes demote at 8, so a
		// dense node never holds fewer than 9
		if nonNil <= arrayDemoteSize {
			t.Fatalf("array node with %d children was not demoted", nonNil)
		}
		return count

	case *dictCollision[K, V]:
		if len(n.keys) < 2 || len(n.keys) != len(n.vals) {
			t.Fatalf("bucket with %d keys, %d values", len(n.keys), len(n.vals))
		}
		if !route(n.hash) {
			t.Fatalf("bucket with hash %#x reached via the wrong path", n.hash)
		}
		return len(n.keys)

	default:
		t.Fatalf("unknown node type %T", n)
		return 0
	}
}

func checkDictInvariants[K comparable, V any](t *testing.T, d *Dict[K, V]) {
	t.Helper()

	if d.root == nil {
		if d.size != 0 {
			t.Fatalf("nil root with size %d", d.size)
		}
		return
	}
	count := checkDictNode[K, V](t, d.root, 0, func(uint32) bool { return true })
	if count != d.size {
		t.Fatalf("size %d but %d entries reachable", d.size, count)
	}

	// every entry is reachable by lookup through its own key
	d.ForEach(func(k K, want V) {
		if _, ok := d.Get(k); !ok {
			t.Fatalf("entry %v not reachable by lookup", k)
		}
	})
}

func TestDictInvariantsThroughBuildAndTeardown(t *testing.T) {
	t.Parallel()

	d := NewDict[string, int](HashString)
	checkDictInvariants(t, d)

	const n = 3000
	for i := 0; i < n; i++ {
		d = d.Set(fmt.Sprintf("key-%d", i), i)
		if i%251 == 0 {
			checkDictInvariants(t, d)
		}
	}
	checkDictInvariants(t, d)

	for i := 0; i < n; i += 2 {
		d = d.Delete(fmt.Sprintf("key-%d", i))
		if i%502 == 0 {
			checkDictInvariants(t, d)
		}
	}
	checkDictInvariants(t, d)
	if d.Len() != n/2 {
		t.Fatalf("size after teardown: got %d, want %d", d.Len(), n/2)
	}

	for i := 1; i < n; i += 2 {
		d = d.Delete(fmt.Sprintf("key-%d", i))
	}
	checkDictInvariants(t, d)
	if d.Len() != 0 {
		t.Fatalf("size after full teardown: got %d, want 0", d.Len())
	}
	if d.root != nil {
		t.Fatalf("root not nil after full teardown: %T", d.root)
	}
}

func TestDictInvariantsWithCollisions(t *testing.T) {
	t.Parallel()

	// 64 keys over 8 distinct hashes: every hash holds a bucket
	hasher := func(i int) uint32 { return uint32(i % 8) }
	d := NewDict[int, int](hasher)
	for i := 0; i < 64; i++ {
		d = d.Set(i, i*i)
	}
	checkDictInvariants(t, d)
	if d.Len() != 64 {
		t.Fatalf("size: got %d, want 64", d.Len())
	}

	for i := 0; i < 64; i += 3 {
		d = d.Delete(i)
	}
	checkDictInvariants(t, d)
	for i := 0; i < 64; i++ {
		got, ok := d.Get(i)
		if i%3 == 0 {
			if ok {
				t.Fatalf("deleted key %d still present", i)
			}
			continue
		}
		if !ok || got != i*i {
			t.Fatalf("get(%d): got %d, %t", i, got, ok)
		}
	}
}
