package avl

// Node is a single tree node holding key and value.
type Node[K, V any] struct {
	key    K
	value  V
	left   *Node[K, V]
	right  *Node[K, V]
	height int // leaf has height 1
}

// Key returns key of the tree node.
func (n *Node[K, V]) Key() K {
	return n.key
}

// Value returns value of the tree node.
func (n *Node[K, V]) Value() V {
	return n.value
}

// MostLeft returns the most left node of the subtree or nil for nil node.
func (n *Node[K, V]) MostLeft() *Node[K, V] {
	if n == nil {
		return nil
	}
	for n.left != nil {
		n = n.left
	}
	return n
}

// MostRight returns the most right node of the subtree or nil for nil node.
func (n *Node[K, V]) MostRight() *Node[K, V] {
	if n == nil {
		return nil
	}
	for n.right != nil {
		n = n.right
	}
	return n
}

func (n *Node[K, V]) getHeight() int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *Node[K, V]) add(node *Node[K, V], compare func(a, b K) int) *Node[K, V] {
	if n == nil {
		return node
	}
	if compare(node.key, n.key) < 0 {
		n.left = n.left.add(node, compare)
	} else {
		n.right = n.right.add(node, compare)
	}
	return n.rebalance()
}

// remove returns the new subtree root and the detached node (nil if not found).
func (n *Node[K, V]) remove(key K, compare func(a, b K) int) (root, removed *Node[K, V]) {
	if n == nil {
		return nil, nil
	}
	cmp := compare(key, n.key)
	switch {
	case cmp < 0:
		n.left, removed = n.left.remove(key, compare)
	case cmp > 0:
		n.right, removed = n.right.remove(key, compare)
	default:
		removed = n
		switch {
		case n.left == nil:
			return n.right, removed
		case n.right == nil:
			return n.left, removed
		}
		// Two children: successor takes the place of the removed node
		var successor *Node[K, V]
		right := n.right
		right, successor = right.popMostLeft()
		successor.left = n.left
		successor.right = right
		n.left, n.right = nil, nil
		return successor.rebalance(), removed
	}
	if removed == nil {
		return n, nil
	}
	return n.rebalance(), removed
}

func (n *Node[K, V]) popMostLeft() (root, mostLeft *Node[K, V]) {
	if n.left == nil {
		right := n.right
		n.right = nil
		return right, n
	}
	n.left, mostLeft = n.left.popMostLeft()
	return n.rebalance(), mostLeft
}

func (n *Node[K, V]) iterateInOrder(f func(key K, value V) bool) bool {
	if n == nil {
		return false
	}
	if n.left.iterateInOrder(f) {
		return true
	}
	if f(n.key, n.value) {
		return true
	}
	return n.right.iterateInOrder(f)
}

func (n *Node[K, V]) iteratePostOrder(f func(node *Node[K, V])) {
	if n == nil {
		return
	}
	n.left.iteratePostOrder(f)
	n.right.iteratePostOrder(f)
	f(n)
}

func (n *Node[K, V]) updateHeight() {
	n.height = 1 + max(n.left.getHeight(), n.right.getHeight())
}

func (n *Node[K, V]) rebalance() *Node[K, V] {
	n.updateHeight()
	switch balance := n.left.getHeight() - n.right.getHeight(); {
	case balance > 1:
		if n.left.left.getHeight() < n.left.right.getHeight() {
			n.left = n.left.rotateLeft()
		}
		return n.rotateRight()
	case balance < -1:
		if n.right.right.getHeight() < n.right.left.getHeight() {
			n.right = n.right.rotateRight()
		}
		return n.rotateLeft()
	}
	return n
}

func (n *Node[K, V]) rotateLeft() *Node[K, V] {
	newRoot := n.right
	n.right = newRoot.left
	newRoot.left = n
	n.updateHeight()
	newRoot.updateHeight()
	return newRoot
}

func (n *Node[K, V]) rotateRight() *Node[K, V] {
	newRoot := n.left
	n.left = newRoot.right
	newRoot.right = n
	n.updateHeight()
	newRoot.updateHeight()
	return newRoot
}
