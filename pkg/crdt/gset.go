package crdt

// GSet 实现只增集合 (Grow-only Set)。
// 本地添加和合并都只会让集合变大，不支持移除。
// 零值即为 bottom（空集合）。
type GSet[T comparable] struct {
	Elems map[T]struct{}
}

// NewGSet 创建一个空的 GSet。
func NewGSet[T comparable]() GSet[T] {
	return GSet[T]{}
}

// Add 返回加入元素 e 后的新集合。
func (s GSet[T]) Add(e T) GSet[T] {
	elems := make(map[T]struct{}, len(s.Elems)+1)
	for k := range s.Elems {
		elems[k] = struct{}{}
	}
	elems[e] = struct{}{}
	return GSet[T]{Elems: elems}
}

// Contains 判断元素 e 是否在集合中。
func (s GSet[T]) Contains(e T) bool {
	_, ok := s.Elems[e]
	return ok
}

// Elements 返回集合中的全部元素，顺序不保证。
func (s GSet[T]) Elements() []T {
	res := make([]T, 0, len(s.Elems))
	for k := range s.Elems {
		res = append(res, k)
	}
	return res
}

// Len 返回集合大小。
func (s GSet[T]) Len() int {
	return len(s.Elems)
}

// Merge 返回两个集合的并集。
func (s GSet[T]) Merge(other GSet[T]) GSet[T] {
	elems := make(map[T]struct{}, len(s.Elems)+len(other.Elems))
	for k := range s.Elems {
		elems[k] = struct{}{}
	}
	for k := range other.Elems {
		elems[k] = struct{}{}
	}
	return GSet[T]{Elems: elems}
}

// Equal 判断两个集合是否含有相同元素。
func (s GSet[T]) Equal(other GSet[T]) bool {
	if len(s.Elems) != len(other.Elems) {
		return false
	}
	for k := range s.Elems {
		if _, ok := other.Elems[k]; !ok {
			return false
		}
	}
	return true
}
