package cache

// lruNode is an element of an lruRing.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruRing is a circular doubly-linked list around a sentinel. The node
// after the sentinel is the most recently used. Not safe for concurrent
// use.
type lruRing[K comparable] struct {
	root lruNode[K]
	n    int
}

func (l *lruRing[K]) init() {
	l.root.prev = &l.root
	l.root.next = &l.root
	l.n = 0
}

func (l *lruRing[K]) lazyInit() {
	if l.root.next == nil {
		l.init()
	}
}

// Len returns the number of keys in the ring.
func (l *lruRing[K]) Len() int { return l.n }

// PushFront inserts key as the most recently used entry.
func (l *lruRing[K]) PushFront(key K) *lruNode[K] {
	l.lazyInit()
	n := &lruNode[K]{key: key}
	l.link(n, &l.root)
	return n
}

// Touch marks n as the most recently used entry.
func (l *lruRing[K]) Touch(n *lruNode[K]) {
	if n == nil || l.root.next == n {
		return
	}
	l.unlink(n)
	l.link(n, &l.root)
}

// Remove drops n from the ring.
func (l *lruRing[K]) Remove(n *lruNode[K]) {
	if n == nil || n.next == nil {
		return
	}
	l.unlink(n)
}

// PopOldest removes and returns the least recently used key.
func (l *lruRing[K]) PopOldest() (K, bool) {
	if l.n == 0 {
		var zero K
		return zero, false
	}
	n := l.root.prev
	l.unlink(n)
	return n.key, true
}

// link inserts n after at.
func (l *lruRing[K]) link(n, at *lruNode[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	l.n++
}

func (l *lruRing[K]) unlink(n *lruNode[K]) {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next = nil, nil
	l.n--
}
