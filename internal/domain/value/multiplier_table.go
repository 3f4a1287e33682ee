package value

import "strings"

// NeutralMultiplier is returned for keys a table does not know.
const NeutralMultiplier = 1.0

type Multiplier struct {
	Key   string
	Value float64
}

// MultiplierTable is an immutable, case-insensitive key to multiplier lookup
// that remembers the order its entries were declared in.
type MultiplierTable struct {
	keys   []string
	values map[string]float64
}

// NewMultiplierTable copies entries into a new table. Keys are stored lower
// cased; a repeated key keeps its first position and its last value.
func NewMultiplierTable(entries ...Multiplier) MultiplierTable {
	t := MultiplierTable{
		keys:   make([]string, 0, len(entries)),
		values: make(map[string]float64, len(entries)),
	}

	for _, e := range entries {
		key := strings.ToLower(e.Key)

		if _, ok := t.values[key]; !ok {
			t.keys = append(t.keys, key)
		}

		t.values[key] = e.Value
	}

	return t
}

// Lookup never fails: unknown keys yield NeutralMultiplier.
func (t MultiplierTable) Lookup(key string) float64 {
	if v, ok := t.values[strings.ToLower(key)]; ok {
		return v
	}

	return NeutralMultiplier
}

func (t MultiplierTable) Contains(key string) bool {
	_, ok := t.values[strings.ToLower(key)]

	return ok
}

// Keys returns a copy of the keys in declaration order.
func (t MultiplierTable) Keys() []string {
	keys := make([]string, len(t.keys))
	copy(keys, t.keys)

	return keys
}

func (t MultiplierTable) Len() int {
	return len(t.keys)
}
