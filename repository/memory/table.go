package memory

type entry[T any] struct {
	id  int64
	row *T
}

// table 是按 id 索引的 arena：entries 保持插入顺序，删除时留空位，
// 倒序遍历即为创建时间倒序，不需要每次读都排序。
type table[T any] struct {
	entries []entry[T]
	index   map[int64]int
	live    int
}

func newTable[T any]() *table[T] {
	return &table[T]{index: make(map[int64]int)}
}

func (t *table[T]) put(id int64, v T) {
	row := new(T)
	*row = v
	t.entries = append(t.entries, entry[T]{id: id, row: row})
	t.index[id] = len(t.entries) - 1
	t.live++
}

// at 返回内部指针，调用方必须持有写锁
func (t *table[T]) at(id int64) (*T, bool) {
	i, ok := t.index[id]
	if !ok {
		return nil, false
	}
	return t.entries[i].row, true
}

func (t *table[T]) remove(id int64) bool {
	i, ok := t.index[id]
	if !ok {
		return false
	}
	t.entries[i].row = nil
	delete(t.index, id)
	t.live--
	if len(t.entries) > 64 && t.live < len(t.entries)/2 {
		t.compact()
	}
	return true
}

// compact 去掉空位并重建索引，保持原有顺序
func (t *table[T]) compact() {
	entries := make([]entry[T], 0, t.live)
	for _, e := range t.entries {
		if e.row != nil {
			entries = append(entries, e)
		}
	}
	t.entries = entries
	t.index = make(map[int64]int, len(entries))
	for i, e := range entries {
		t.index[e.id] = i
	}
}

func (t *table[T]) list(keep func(*T) bool) []T {
	out := make([]T, 0, t.live)
	for i := len(t.entries) - 1; i >= 0; i-- {
		r := t.entries[i].row
		if r == nil || (keep != nil && !keep(r)) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func (t *table[T]) len() int {
	return t.live
}
