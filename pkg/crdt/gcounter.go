package crdt

// GCounter 实现只增计数器 (Grow-only Counter)。
// 状态是副本 -> 非负计数的映射；每个副本只增加自己的槽位，
// 合并时对每个槽位取最大值，因此计数永不回退。
// 零值即为 bottom（所有槽位为 0）。
type GCounter struct {
	Counts map[ReplicaID]uint64
}

// NewGCounter 创建一个空的 GCounter。
func NewGCounter() GCounter {
	return GCounter{}
}

// Increment 返回在副本 id 的槽位上加一后的新计数器。
func (c GCounter) Increment(id ReplicaID) GCounter {
	counts := make(map[ReplicaID]uint64, len(c.Counts)+1)
	for k, v := range c.Counts {
		counts[k] = v
	}
	counts[id]++
	return GCounter{Counts: counts}
}

// Value 返回所有副本计数之和。
func (c GCounter) Value() uint64 {
	var total uint64
	for _, v := range c.Counts {
		total += v
	}
	return total
}

// Count 返回单个副本的计数（未知副本为 0）。
func (c GCounter) Count(id ReplicaID) uint64 {
	return c.Counts[id]
}

// Merge 对两个计数器按槽位取最大值（缺失槽位视为 0）。
func (c GCounter) Merge(other GCounter) GCounter {
	counts := make(map[ReplicaID]uint64, len(c.Counts)+len(other.Counts))
	for k, v := range c.Counts {
		counts[k] = v
	}
	for k, v := range other.Counts {
		if v > counts[k] {
			counts[k] = v
		}
	}
	return GCounter{Counts: counts}
}

// Equal 判断两个计数器状态是否一致。
// 可达状态中不存在值为 0 的槽位，所以逐槽位比较即可。
func (c GCounter) Equal(other GCounter) bool {
	if len(c.Counts) != len(other.Counts) {
		return false
	}
	for k, v := range c.Counts {
		if other.Counts[k] != v {
			return false
		}
	}
	return true
}
