package cache

// lruNode links one key into the recency list.
type lruNode[K comparable] struct {
	key        K
	prev, next *lruNode[K]
}

// lruList orders keys from most (head) to least (tail) recently used.
// Not safe for concurrent use; shards guard it with their mutex.
type lruList[K comparable] struct {
	head, tail *lruNode[K]
	n          int
}

func (l *lruList[K]) Len() int { return l.n }

// pushFront inserts key as the most recently used.
func (l *lruList[K]) pushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.link(node)
	return node
}

// touch marks node as the most recently used.
func (l *lruList[K]) touch(node *lruNode[K]) {
	if node == l.head {
		return
	}
	l.unlink(node)
	l.link(node)
}

// popBack removes the least recently used key.
func (l *lruList[K]) popBack() (K, bool) {
	if l.tail == nil {
		var zero K
		return zero, false
	}
	node := l.tail
	l.unlink(node)
	return node.key, true
}

func (l *lruList[K]) remove(node *lruNode[K]) { l.unlink(node) }

func (l *lruList[K]) reset() {
	l.head, l.tail, l.n = nil, nil, 0
}

func (l *lruList[K]) link(node *lruNode[K]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.n++
}

func (l *lruList[K]) unlink(node *lruNode[K]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	node.prev, node.next = nil, nil
	l.n--
}
