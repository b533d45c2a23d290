package convert

import "strings"

// MergedAnnotation is the ordered key/value block destined for one variant
// group's INFO field.
type MergedAnnotation struct {
	keys   []string
	values map[string]string
}

// NewMergedAnnotation creates an empty annotation block.
func NewMergedAnnotation() *MergedAnnotation {
	return &MergedAnnotation{values: make(map[string]string)}
}

// set stores a value, keeping first-insertion key order.
func (m *MergedAnnotation) set(key, value string) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Len returns the number of keys.
func (m *MergedAnnotation) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order. The caller must not modify the
// returned slice.
func (m *MergedAnnotation) Keys() []string {
	return m.keys
}

// Get returns the value stored under key.
func (m *MergedAnnotation) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// InfoString renders the block as a semicolon-joined "key=value" INFO
// field. An empty block renders as the empty string.
func (m *MergedAnnotation) InfoString() string {
	var b strings.Builder
	for i, key := range m.keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(m.values[key])
	}
	return b.String()
}
