package domain

// ModifiedStateListener receives the aggregate HasModifications value each time it flips.
type ModifiedStateListener func(hasModifications bool)

// modifiedStateNotifier publishes the aggregate modified flag to listeners,
// but only when the flag actually changes.
type modifiedStateNotifier struct {
	listeners map[int]ModifiedStateListener
	order     []int
	nextID    int
	last      bool
}

func newModifiedStateNotifier() *modifiedStateNotifier {
	return &modifiedStateNotifier{listeners: make(map[int]ModifiedStateListener)}
}

func (n *modifiedStateNotifier) subscribe(fn ModifiedStateListener) func() {
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.order = append(n.order, id)

	return func() {
		if _, ok := n.listeners[id]; !ok {
			return
		}
		delete(n.listeners, id)
		for i, v := range n.order {
			if v == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

// publish notifies listeners if hasModifications differs from the last published value.
func (n *modifiedStateNotifier) publish(hasModifications bool) {
	if hasModifications == n.last {
		return
	}
	n.last = hasModifications

	ids := make([]int, len(n.order))
	copy(ids, n.order)
	for _, id := range ids {
		if fn, ok := n.listeners[id]; ok {
			fn(hasModifications)
		}
	}
}
