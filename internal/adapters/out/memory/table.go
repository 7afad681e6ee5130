package memory

// table keeps records by id and remembers insertion order.
type table[R any] struct {
	rows  map[string]R
	order []string
}

func newTable[R any]() *table[R] {
	return &table[R]{rows: make(map[string]R)}
}

func (t *table[R]) get(id string) (R, bool) {
	row, ok := t.rows[id]
	return row, ok
}

func (t *table[R]) has(id string) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[R]) put(id string, row R) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = row
}

func (t *table[R]) len() int {
	return len(t.rows)
}

func (t *table[R]) each(fn func(id string, row R)) {
	for _, id := range t.order {
		fn(id, t.rows[id])
	}
}
