package crdt

// ORSet 实现观察-移除集合 (Observed-Remove Set)。
// 状态是元素 -> 唯一标记集合的映射，加上全局的已移除标记（墓碑）集合。
// 元素有效存在，当且仅当它至少拥有一个不在墓碑集合中的标记。
//
// Remove 只为移除方当前观察到的标记落墓碑：其他副本并发添加、
// 尚未被观察到的标记不受影响，这正是 ORSet "添加胜出" 语义的来源。
// 墓碑会随合并无限累积；对全网都已确认移除的标记做压缩属于外部协作者，
// 不在核心范围内。
type ORSet[T comparable] struct {
	Elems      map[T]map[Tag]struct{}
	Tombstones map[Tag]struct{}
}

// NewORSet 创建一个空的 ORSet。
func NewORSet[T comparable]() ORSet[T] {
	return ORSet[T]{}
}

// Add 返回以标记 tag 加入元素 e 后的新集合。
// tag 必须来自调用方持有的 TagGen，保证此前从未被任何副本使用过。
func (s ORSet[T]) Add(e T, tag Tag) ORSet[T] {
	elems := cloneElems(s.Elems, 1)
	tags := make(map[Tag]struct{}, len(s.Elems[e])+1)
	for t := range s.Elems[e] {
		tags[t] = struct{}{}
	}
	tags[tag] = struct{}{}
	elems[e] = tags
	return ORSet[T]{Elems: elems, Tombstones: s.Tombstones}
}

// Remove 返回移除元素 e 后的新集合。
// 它把本副本当前观察到的 e 的所有标记移入墓碑集合；
// e 不存在时是无操作。
func (s ORSet[T]) Remove(e T) ORSet[T] {
	observed, ok := s.Elems[e]
	if !ok {
		return s
	}

	tombstones := make(map[Tag]struct{}, len(s.Tombstones)+len(observed))
	for t := range s.Tombstones {
		tombstones[t] = struct{}{}
	}
	for t := range observed {
		tombstones[t] = struct{}{}
	}

	elems := cloneElems(s.Elems, 0)
	delete(elems, e)
	return ORSet[T]{Elems: elems, Tombstones: tombstones}
}

// Contains 判断元素 e 是否有效存在（至少有一个未落墓碑的标记）。
func (s ORSet[T]) Contains(e T) bool {
	for t := range s.Elems[e] {
		if _, dead := s.Tombstones[t]; !dead {
			return true
		}
	}
	return false
}

// Elements 返回当前有效存在的全部元素，顺序不保证。
func (s ORSet[T]) Elements() []T {
	res := make([]T, 0, len(s.Elems))
	for e := range s.Elems {
		if s.Contains(e) {
			res = append(res, e)
		}
	}
	return res
}

// Merge 对每个元素的标记集合与墓碑集合各自取并集，
// 然后把已落墓碑的标记从标记集合中剪掉、丢弃空元素，保持规范形式。
func (s ORSet[T]) Merge(other ORSet[T]) ORSet[T] {
	tombstones := make(map[Tag]struct{}, len(s.Tombstones)+len(other.Tombstones))
	for t := range s.Tombstones {
		tombstones[t] = struct{}{}
	}
	for t := range other.Tombstones {
		tombstones[t] = struct{}{}
	}

	elems := make(map[T]map[Tag]struct{}, len(s.Elems)+len(other.Elems))
	addLive := func(e T, tags map[Tag]struct{}) {
		for t := range tags {
			if _, dead := tombstones[t]; dead {
				continue
			}
			if elems[e] == nil {
				elems[e] = make(map[Tag]struct{}, len(tags))
			}
			elems[e][t] = struct{}{}
		}
	}
	for e, tags := range s.Elems {
		addLive(e, tags)
	}
	for e, tags := range other.Elems {
		addLive(e, tags)
	}

	return ORSet[T]{Elems: elems, Tombstones: tombstones}
}

// Equal 判断两个集合状态是否一致。
// 本地操作与 Merge 产生的状态都是规范形式（标记集合中不含墓碑标记），
// 因此直接逐元素比较标记集合与墓碑集合。
func (s ORSet[T]) Equal(other ORSet[T]) bool {
	if len(s.Elems) != len(other.Elems) || len(s.Tombstones) != len(other.Tombstones) {
		return false
	}
	for t := range s.Tombstones {
		if _, ok := other.Tombstones[t]; !ok {
			return false
		}
	}
	for e, tags := range s.Elems {
		otherTags, ok := other.Elems[e]
		if !ok || len(tags) != len(otherTags) {
			return false
		}
		for t := range tags {
			if _, ok := otherTags[t]; !ok {
				return false
			}
		}
	}
	return true
}

func cloneElems[T comparable](elems map[T]map[Tag]struct{}, extra int) map[T]map[Tag]struct{} {
	next := make(map[T]map[Tag]struct{}, len(elems)+extra)
	for e, tags := range elems {
		ts := make(map[Tag]struct{}, len(tags))
		for t := range tags {
			ts[t] = struct{}{}
		}
		next[e] = ts
	}
	return next
}
