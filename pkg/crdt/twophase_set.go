package crdt

// TwoPhaseSet 实现两阶段集合 (2P-Set)。
// 状态是两个 GSet：Added 记录加入过的元素，Removed 记录移除过的元素（墓碑）。
// 有效成员 = Added − Removed。元素一旦被移除就永远无法重新加入，
// 这是 2P-Set 有意为之的限制；需要重新加入语义时应使用 ORSet。
type TwoPhaseSet[T comparable] struct {
	Added   GSet[T]
	Removed GSet[T]
}

// NewTwoPhaseSet 创建一个空的 2P-Set。
func NewTwoPhaseSet[T comparable]() TwoPhaseSet[T] {
	return TwoPhaseSet[T]{}
}

// Add 返回加入元素 e 后的新集合。
// 如果 e 已被移除（存在墓碑），加入是无操作而不是错误。
func (s TwoPhaseSet[T]) Add(e T) TwoPhaseSet[T] {
	if s.Removed.Contains(e) {
		return s
	}
	return TwoPhaseSet[T]{Added: s.Added.Add(e), Removed: s.Removed}
}

// Remove 返回移除元素 e 后的新集合。
// 只有 e 当前有效存在时才落墓碑，否则是无操作。
func (s TwoPhaseSet[T]) Remove(e T) TwoPhaseSet[T] {
	if !s.Contains(e) {
		return s
	}
	return TwoPhaseSet[T]{Added: s.Added, Removed: s.Removed.Add(e)}
}

// Contains 判断元素 e 当前是否有效存在。
func (s TwoPhaseSet[T]) Contains(e T) bool {
	return s.Added.Contains(e) && !s.Removed.Contains(e)
}

// Elements 返回当前有效存在的全部元素，顺序不保证。
func (s TwoPhaseSet[T]) Elements() []T {
	res := make([]T, 0, len(s.Added.Elems))
	for k := range s.Added.Elems {
		if !s.Removed.Contains(k) {
			res = append(res, k)
		}
	}
	return res
}

// Merge 对 Added 与 Removed 两个分量各自取并集。
func (s TwoPhaseSet[T]) Merge(other TwoPhaseSet[T]) TwoPhaseSet[T] {
	return TwoPhaseSet[T]{
		Added:   s.Added.Merge(other.Added),
		Removed: s.Removed.Merge(other.Removed),
	}
}

// Equal 判断两个集合状态是否一致。
func (s TwoPhaseSet[T]) Equal(other TwoPhaseSet[T]) bool {
	return s.Added.Equal(other.Added) && s.Removed.Equal(other.Removed)
}
