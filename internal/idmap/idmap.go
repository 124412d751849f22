// Package idmap provides an append-only interning table mapping values
// to dense integer ids. Ids are assigned in insertion order starting at
// zero, so an id doubles as an index into the table.
package idmap

type Map[K comparable] struct {
	values []K
	ids    map[K]int32
}

func New[K comparable]() *Map[K] {
	return &Map[K]{
		ids: make(map[K]int32),
	}
}

// Intern returns the id for the given value, assigning a fresh id if the
// value has not been seen before.
func (m *Map[K]) Intern(v K) int32 {
	if id, ok := m.ids[v]; ok {
		return id
	}
	id := int32(len(m.values))
	m.ids[v] = id
	m.values = append(m.values, v)
	return id
}

// Lookup returns the id for the given value without interning it.
func (m *Map[K]) Lookup(v K) (int32, bool) {
	id, ok := m.ids[v]
	return id, ok
}

// Value returns the value for an id previously returned by Intern.
func (m *Map[K]) Value(id int32) K {
	return m.values[id]
}

func (m *Map[K]) Len() int {
	return len(m.values)
}
