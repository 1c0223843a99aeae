package crdt

// Map 把任意一种 CvRDT 按键逐点提升为映射容器：每个键持有一个独立的
// V 类型状态，合并时逐键独立合并，缺失的键视为 V 的零值 (bottom)。
// 键之间没有任何跨键不变量——半格的逐点提升仍然是半格。
// 零值即为 bottom（空映射）。
type Map[K comparable, V CvRDT[V]] struct {
	Entries map[K]V
}

// NewMap 创建一个空的 Map。
func NewMap[K comparable, V CvRDT[V]]() Map[K, V] {
	return Map[K, V]{}
}

// Get 返回键 key 的状态，缺失时返回 V 的零值 (bottom)。
func (m Map[K, V]) Get(key K) V {
	if v, ok := m.Entries[key]; ok {
		return v
	}
	var bottom V
	return bottom
}

// Keys 返回映射中出现过的全部键，顺序不保证。
func (m Map[K, V]) Keys() []K {
	res := make([]K, 0, len(m.Entries))
	for k := range m.Entries {
		res = append(res, k)
	}
	return res
}

// Update 对键 key 的状态施加本地操作 f 并存回结果。
// f 必须是 V 的单调本地操作（例如计数器的 Increment），
// 这样整个 Map 的单调性才随之成立。
func (m Map[K, V]) Update(key K, f func(V) V) Map[K, V] {
	entries := make(map[K]V, len(m.Entries)+1)
	for k, v := range m.Entries {
		entries[k] = v
	}
	entries[key] = f(m.Get(key))
	return Map[K, V]{Entries: entries}
}

// Merge 逐键合并：两边都有的键合并其状态，只在一边出现的键原样保留。
// 结果只在双方都缺失某个键时才缺失它。
func (m Map[K, V]) Merge(other Map[K, V]) Map[K, V] {
	entries := make(map[K]V, len(m.Entries)+len(other.Entries))
	for k, v := range m.Entries {
		entries[k] = v
	}
	for k, v := range other.Entries {
		if cur, ok := entries[k]; ok {
			entries[k] = cur.Merge(v)
		} else {
			entries[k] = v
		}
	}
	return Map[K, V]{Entries: entries}
}

// Equal 逐键比较两个映射，缺失的键等价于 bottom。
func (m Map[K, V]) Equal(other Map[K, V]) bool {
	for k, v := range m.Entries {
		if !v.Equal(other.Get(k)) {
			return false
		}
	}
	for k, v := range other.Entries {
		if _, ok := m.Entries[k]; !ok {
			var bottom V
			if !v.Equal(bottom) {
				return false
			}
		}
	}
	return true
}
