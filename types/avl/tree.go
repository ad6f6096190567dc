package avl

import (
	"sync"

	"gopkg.in/typ.v4"
)

// Tree is a self-balancing binary search tree (AVL) keeping its nodes ordered by
// the comparator given on creation. Insertion, lookup and removal are O(log n),
// the most left node is cached so the smallest key is available in O(1).
// NOTE: Not thread-safe.
type Tree[K, V any] struct {
	compare  func(a, b K) int
	pool     *sync.Pool
	root     *Node[K, V]
	mostLeft *Node[K, V]
	size     int
}

////////////////////////////////////////////////////////////////

// NewOrderedTree creates a new tree ordering keys ascending
// for any ordered type (ints, uints, floats, strings).
func NewOrderedTree[K typ.Ordered, V any]() Tree[K, V] {
	return NewTree[K, V](typ.Compare[K])
}

// NewReversedOrderedTree creates a new tree ordering keys descending.
func NewReversedOrderedTree[K typ.Ordered, V any]() Tree[K, V] {
	return NewTree[K, V](func(a, b K) int { return typ.Compare(b, a) })
}

// NewTree creates a new tree using a comparator function that is
// expected to return 0 if a == b, -1 if a < b, and +1 if a > b.
func NewTree[K, V any](compare func(a, b K) int) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
	}
}

// NewTreePooled creates a new tree which takes its nodes from the given pool
// and puts removed nodes back to it.
func NewTreePooled[K, V any](compare func(a, b K) int, pool *sync.Pool) Tree[K, V] {
	return Tree[K, V]{
		compare: compare,
		pool:    pool,
	}
}

////////////////////////////////////////////////////////////////

// Size returns the amount of nodes in the tree.
func (t *Tree[K, V]) Size() int {
	return t.size
}

// Height returns the height of the tree (zero for empty tree).
func (t *Tree[K, V]) Height() int {
	return t.root.getHeight()
}

// Contains checks if node with given key exists in the tree.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.Find(key) != nil
}

// Find finds the node with given key in the tree.
func (t *Tree[K, V]) Find(key K) *Node[K, V] {
	for current := t.root; current != nil; {
		cmp := t.compare(key, current.key)
		switch {
		case cmp < 0:
			current = current.left
		case cmp > 0:
			current = current.right
		default:
			return current
		}
	}
	return nil
}

// Add inserts a node with given key and value to the tree.
// Duplicate keys are not allowed so error will be returned on duplicate.
func (t *Tree[K, V]) Add(key K, value V) (*Node[K, V], error) {
	if t.Find(key) != nil {
		return nil, ErrorTreeNodeDuplicate
	}

	var node *Node[K, V]
	if t.pool != nil {
		node = t.pool.Get().(*Node[K, V])
	} else {
		node = new(Node[K, V])
	}
	node.key, node.value, node.height = key, value, 1

	t.root = t.root.add(node, t.compare)
	t.size++

	if t.mostLeft == nil || t.compare(key, t.mostLeft.key) < 0 {
		t.mostLeft = node
	}
	return node, nil
}

// Remove removes a node with given key from the tree and returns its value.
func (t *Tree[K, V]) Remove(key K) (value V, err error) {
	var removed *Node[K, V]
	t.root, removed = t.root.remove(key, t.compare)
	if removed == nil {
		err = ErrorTreeNodeNotFound
		return
	}
	value = removed.value
	t.size--

	if t.mostLeft == removed {
		t.mostLeft = t.root.MostLeft()
	}

	// Release tree node if pool is used
	if t.pool != nil {
		*removed = Node[K, V]{}
		t.pool.Put(removed)
	}
	return
}

// MostLeft returns the node with the smallest key according to the comparator.
func (t *Tree[K, V]) MostLeft() *Node[K, V] {
	return t.mostLeft
}

// MostRight returns the node with the largest key according to the comparator.
func (t *Tree[K, V]) MostRight() *Node[K, V] {
	return t.root.MostRight()
}

// Clear resets the tree to an empty one releasing pooled nodes.
func (t *Tree[K, V]) Clear() {
	if t.root != nil && t.pool != nil {
		t.root.iteratePostOrder(func(node *Node[K, V]) {
			*node = Node[K, V]{}
			t.pool.Put(node)
		})
	}
	t.root = nil
	t.mostLeft = nil
	t.size = 0
}

// IterateInOrder iterates all nodes in comparator order until f returns true.
func (t *Tree[K, V]) IterateInOrder(f func(key K, value V) bool) {
	t.root.iterateInOrder(f)
}

// IteratePostOrder iterates all values visiting both children before their parent.
// Useful when releasing values as it always visits leaves first.
func (t *Tree[K, V]) IteratePostOrder(f func(value V)) {
	t.root.iteratePostOrder(func(node *Node[K, V]) {
		f(node.value)
	})
}
