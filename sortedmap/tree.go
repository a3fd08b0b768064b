// This file contains treeMap, a red-black tree implementation of the Map
// interface ordered by a caller-supplied comparator. Red-black trees keep the
// following properties to stay approximately balanced, giving O(log n)
// inserts, deletes, and lookups:
//  1. Every node is either red or black
//  2. The root is black
//  3. All leaves (nil nodes) are black
//  4. Red nodes cannot have red children
//  5. Every path from root to leaf contains the same number of black nodes
package sortedmap

import (
	"iter"

	"github.com/amp-labs/amp-collectors/compare"
)

// nodeColor is the balancing color of a tree node.
// Black is true so that zero-valued nodes default to black.
type nodeColor bool

const (
	black, red nodeColor = true, false
)

type treeNode[K any, V any] struct {
	key    K
	value  V
	color  nodeColor
	left   *treeNode[K, V]
	right  *treeNode[K, V]
	parent *treeNode[K, V]
}

// treeMap is a single-owner red-black tree. It performs no internal
// synchronization; wrap it with NewConcurrent for shared use.
type treeMap[K any, V any] struct {
	cmp  compare.Func[K]
	root *treeNode[K, V]
	size int
}

// New creates an empty sorted map ordered by cmp. The returned map is not
// safe for concurrent use.
func New[K any, V any](cmp compare.Func[K]) Map[K, V] {
	return &treeMap[K, V]{cmp: cmp}
}

// lookup returns the node holding an equivalent key, or nil.
func (t *treeMap[K, V]) lookup(key K) *treeNode[K, V] {
	node := t.root

	for node != nil {
		switch order := t.cmp(key, node.key); {
		case order < 0:
			node = node.left
		case order > 0:
			node = node.right
		default:
			return node
		}
	}

	return nil
}

func (t *treeMap[K, V]) Get(key K) (V, bool) {
	if node := t.lookup(key); node != nil {
		return node.value, true
	}

	var zero V

	return zero, false
}

func (t *treeMap[K, V]) GetOrElse(key K, defaultValue V) V {
	if value, found := t.Get(key); found {
		return value
	}

	return defaultValue
}

func (t *treeMap[K, V]) Add(key K, value V) {
	if node := t.lookup(key); node != nil {
		node.value = value

		return
	}

	t.insert(key, value)
}

func (t *treeMap[K, V]) Compute(key K, remap func(old V, found bool) (V, error)) error {
	if node := t.lookup(key); node != nil {
		next, err := remap(node.value, true)
		if err != nil {
			return err
		}

		node.value = next

		return nil
	}

	var zero V

	next, err := remap(zero, false)
	if err != nil {
		return err
	}

	t.insert(key, next)

	return nil
}

// insert places a new node for a key known to be absent, then restores the
// red-black properties.
func (t *treeMap[K, V]) insert(key K, value V) {
	var parent *treeNode[K, V]

	goLeft := false

	for node := t.root; node != nil; {
		parent = node

		if goLeft = t.cmp(key, node.key) < 0; goLeft {
			node = node.left
		} else {
			node = node.right
		}
	}

	fresh := &treeNode[K, V]{key: key, value: value, color: red, parent: parent}

	switch {
	case parent == nil:
		fresh.color = black
		t.root = fresh
	case goLeft:
		parent.left = fresh
	default:
		parent.right = fresh
	}

	t.size++

	if parent != nil {
		t.fixupInsert(fresh)
	}
}

func (t *treeMap[K, V]) Remove(key K) {
	target := t.lookup(key)
	if target == nil {
		return
	}

	t.size--

	moved := target
	movedColor := moved.color

	var replacement *treeNode[K, V]

	switch {
	case target.left == nil:
		replacement = target.right
		t.transplant(target, target.right)
	case target.right == nil:
		replacement = target.left
		t.transplant(target, target.left)
	default:
		moved = minimum(target.right)
		movedColor = moved.color
		replacement = moved.right

		if moved.parent == target {
			if replacement != nil {
				replacement.parent = moved
			}
		} else {
			t.transplant(moved, moved.right)
			moved.right = target.right
			moved.right.parent = moved
		}

		t.transplant(target, moved)

		moved.left = target.left
		moved.left.parent = moved
		moved.color = target.color
	}

	if movedColor == black {
		t.fixupDelete(replacement)
	}
}

func (t *treeMap[K, V]) Contains(key K) bool {
	return t.lookup(key) != nil
}

func (t *treeMap[K, V]) Size() int {
	return t.size
}

func (t *treeMap[K, V]) Clear() {
	t.root = nil
	t.size = 0
}

// Seq returns an in-order iterator, ascending by the comparator.
func (t *treeMap[K, V]) Seq() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var walk func(node *treeNode[K, V]) bool

		walk = func(node *treeNode[K, V]) bool {
			if node == nil {
				return true
			}

			return walk(node.left) && yield(node.key, node.value) && walk(node.right)
		}

		walk(t.root)
	}
}

func (t *treeMap[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)

	for key := range t.Seq() {
		keys = append(keys, key)
	}

	return keys
}

func (t *treeMap[K, V]) ForEach(f func(key K, value V)) {
	for key, value := range t.Seq() {
		f(key, value)
	}
}

func (t *treeMap[K, V]) Min() (KeyValuePair[K, V], bool) {
	if t.root == nil {
		return KeyValuePair[K, V]{}, false
	}

	node := minimum(t.root)

	return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true
}

func (t *treeMap[K, V]) Max() (KeyValuePair[K, V], bool) {
	node := t.root
	if node == nil {
		return KeyValuePair[K, V]{}, false
	}

	for node.right != nil {
		node = node.right
	}

	return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true
}

// Floor returns the entry with the largest key <= the given key.
func (t *treeMap[K, V]) Floor(key K) (KeyValuePair[K, V], bool) {
	var best *treeNode[K, V]

	for node := t.root; node != nil; {
		switch order := t.cmp(key, node.key); {
		case order == 0:
			return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true
		case order < 0:
			node = node.left
		default:
			best = node
			node = node.right
		}
	}

	if best == nil {
		return KeyValuePair[K, V]{}, false
	}

	return KeyValuePair[K, V]{Key: best.key, Value: best.value}, true
}

// Ceiling returns the entry with the smallest key >= the given key.
func (t *treeMap[K, V]) Ceiling(key K) (KeyValuePair[K, V], bool) {
	var best *treeNode[K, V]

	for node := t.root; node != nil; {
		switch order := t.cmp(key, node.key); {
		case order == 0:
			return KeyValuePair[K, V]{Key: node.key, Value: node.value}, true
		case order > 0:
			node = node.right
		default:
			best = node
			node = node.left
		}
	}

	if best == nil {
		return KeyValuePair[K, V]{}, false
	}

	return KeyValuePair[K, V]{Key: best.key, Value: best.value}, true
}

// isRed treats nil leaves as black, per red-black tree convention.
func isRed[K any, V any](node *treeNode[K, V]) bool {
	return node != nil && node.color == red
}

// minimum returns the leftmost node of the subtree rooted at node.
func minimum[K any, V any](node *treeNode[K, V]) *treeNode[K, V] {
	for node.left != nil {
		node = node.left
	}

	return node
}

// rotateLeft rotates the subtree around pivot:
//
//	  pivot             child
//	 /     \            /    \
//	A     child  =>  pivot    C
//	      /   \      /   \
//	     B     C    A     B
func (t *treeMap[K, V]) rotateLeft(pivot *treeNode[K, V]) {
	child := pivot.right
	pivot.right = child.left

	if child.left != nil {
		child.left.parent = pivot
	}

	child.parent = pivot.parent

	switch {
	case pivot.parent == nil:
		t.root = child
	case pivot == pivot.parent.left:
		pivot.parent.left = child
	default:
		pivot.parent.right = child
	}

	child.left = pivot
	pivot.parent = child
}

// rotateRight is the mirror image of rotateLeft.
func (t *treeMap[K, V]) rotateRight(pivot *treeNode[K, V]) {
	child := pivot.left
	pivot.left = child.right

	if child.right != nil {
		child.right.parent = pivot
	}

	child.parent = pivot.parent

	switch {
	case pivot.parent == nil:
		t.root = child
	case pivot == pivot.parent.right:
		pivot.parent.right = child
	default:
		pivot.parent.left = child
	}

	child.right = pivot
	pivot.parent = child
}

// transplant replaces the subtree rooted at old with the subtree rooted at sub.
func (t *treeMap[K, V]) transplant(old, sub *treeNode[K, V]) {
	switch {
	case old.parent == nil:
		t.root = sub
	case old == old.parent.left:
		old.parent.left = sub
	default:
		old.parent.right = sub
	}

	if sub != nil {
		sub.parent = old.parent
	}
}

// fixupInsert restores the red-black properties after inserting a red node,
// recoloring and rotating up the tree until no red node has a red child.
//
// nolint:varnamelen // standard red-black tree variable names from CLRS
func (t *treeMap[K, V]) fixupInsert(z *treeNode[K, V]) {
	for z.parent != nil && z.parent.color == red {
		grandparent := z.parent.parent

		if z.parent == grandparent.left { //nolint:nestif // red-black tree algorithm complexity
			uncle := grandparent.right
			if isRed(uncle) {
				z.parent.color = black
				uncle.color = black
				grandparent.color = red
				z = grandparent
			} else {
				if z == z.parent.right {
					z = z.parent
					t.rotateLeft(z)
				}

				z.parent.color = black
				grandparent.color = red
				t.rotateRight(grandparent)
			}
		} else {
			uncle := grandparent.left
			if isRed(uncle) {
				z.parent.color = black
				uncle.color = black
				grandparent.color = red
				z = grandparent
			} else {
				if z == z.parent.left {
					z = z.parent
					t.rotateRight(z)
				}

				z.parent.color = black
				grandparent.color = red
				t.rotateLeft(grandparent)
			}
		}
	}

	t.root.color = black
}

// fixupDelete restores the black-height property after removing a black node.
// Works case-by-case on the sibling of the node being fixed, as in CLRS.
//
// nolint:varnamelen,dupl // standard red-black tree variable names; symmetric cases
func (t *treeMap[K, V]) fixupDelete(x *treeNode[K, V]) {
	if x == nil {
		return
	}

	for x != t.root && x.color == black {
		if x == x.parent.left { //nolint:nestif // red-black tree algorithm complexity
			w := x.parent.right
			if isRed(w) {
				w.color = black
				x.parent.color = red
				t.rotateLeft(x.parent)
				w = x.parent.right
			}

			if w == nil {
				break
			}

			switch {
			case !isRed(w.left) && !isRed(w.right):
				w.color = red
				x = x.parent // move the deficit up the tree
			case isRed(w.left) && !isRed(w.right):
				w.left.color = black
				w.color = red
				t.rotateRight(w)
				w = x.parent.right

				fallthrough
			default:
				w.color = x.parent.color
				x.parent.color = black

				if w.right != nil {
					w.right.color = black
				}

				t.rotateLeft(x.parent)
				x = t.root
			}
		} else {
			w := x.parent.left
			if isRed(w) {
				w.color = black
				x.parent.color = red
				t.rotateRight(x.parent)
				w = x.parent.left
			}

			if w == nil {
				break
			}

			switch {
			case !isRed(w.left) && !isRed(w.right):
				w.color = red
				x = x.parent // move the deficit up the tree
			case isRed(w.right) && !isRed(w.left):
				w.right.color = black
				w.color = red
				t.rotateLeft(w)
				w = x.parent.left

				fallthrough
			default:
				w.color = x.parent.color
				x.parent.color = black

				if w.left != nil {
					w.left.color = black
				}

				t.rotateRight(x.parent)
				x = t.root
			}
		}
	}

	x.color = black
}
