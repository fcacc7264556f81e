package memory

// orderedMap is a string-keyed map that remembers insertion order, which is
// the listing order for every registry collection.
type orderedMap[T any] struct {
	items map[string]T
	keys  []string
}

func newOrderedMap[T any]() *orderedMap[T] {
	return &orderedMap[T]{items: make(map[string]T)}
}

// insert returns false when key is taken and leaves the map untouched.
func (m *orderedMap[T]) insert(key string, v T) bool {
	if _, ok := m.items[key]; ok {
		return false
	}
	m.items[key] = v
	m.keys = append(m.keys, key)
	return true
}

func (m *orderedMap[T]) get(key string) (T, bool) {
	v, ok := m.items[key]
	return v, ok
}

func (m *orderedMap[T]) values() []T {
	out := make([]T, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, m.items[k])
	}
	return out
}

func (m *orderedMap[T]) len() int {
	return len(m.keys)
}
