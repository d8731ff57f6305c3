package domain

// keySet is a set of keys that remembers insertion order, so queries return
// keys in the order the user touched them.
type keySet[K comparable] struct {
	index map[K]int
	keys  []K
}

func newKeySet[K comparable]() *keySet[K] {
	return &keySet[K]{index: make(map[K]int)}
}

func (s *keySet[K]) Add(key K) {
	if _, ok := s.index[key]; ok {
		return
	}
	s.index[key] = len(s.keys)
	s.keys = append(s.keys, key)
}

func (s *keySet[K]) Remove(key K) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	delete(s.index, key)
	s.keys = append(s.keys[:i], s.keys[i+1:]...)
	for j := i; j < len(s.keys); j++ {
		s.index[s.keys[j]] = j
	}
}

func (s *keySet[K]) Has(key K) bool {
	_, ok := s.index[key]
	return ok
}

func (s *keySet[K]) Len() int {
	return len(s.keys)
}

// Keys returns a copy of the keys in insertion order.
func (s *keySet[K]) Keys() []K {
	out := make([]K, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *keySet[K]) Clear() {
	s.index = make(map[K]int)
	s.keys = nil
}
