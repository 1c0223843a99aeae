package crdt

// VClock 表示版本向量：副本 -> 已观察到的写入计数。
// 它按逐点 ≤ 构成偏序，互不可比的两个向量代表并发的因果历史。
// 与可变的向量时钟实现不同，这里的所有操作都返回新值。
type VClock map[ReplicaID]uint64

// Get 返回副本 id 的计数（未知副本为 0）。
func (vc VClock) Get(id ReplicaID) uint64 {
	return vc[id]
}

// Tick 返回在副本 id 的槽位上加一后的新向量。
func (vc VClock) Tick(id ReplicaID) VClock {
	next := make(VClock, len(vc)+1)
	for k, v := range vc {
		next[k] = v
	}
	next[id]++
	return next
}

// Merge 返回两个向量的逐点最大值。
func (vc VClock) Merge(other VClock) VClock {
	next := make(VClock, len(vc)+len(other))
	for k, v := range vc {
		next[k] = v
	}
	for k, v := range other {
		if v > next[k] {
			next[k] = v
		}
	}
	return next
}

// Descends 判断 vc 是否逐点不小于 other（即 other 的因果历史被 vc 覆盖）。
func (vc VClock) Descends(other VClock) bool {
	for k, v := range other {
		if vc[k] < v {
			return false
		}
	}
	return true
}

// Dominates 判断 vc 是否严格支配 other：逐点不小于且至少一处更大。
func (vc VClock) Dominates(other VClock) bool {
	return vc.Descends(other) && !other.Descends(vc)
}

// Concurrent 判断两个向量是否互不可比（代表并发写入）。
func (vc VClock) Concurrent(other VClock) bool {
	return !vc.Descends(other) && !other.Descends(vc)
}

// Equal 判断两个向量是否一致（nil 与空视为相同，0 槽位视为缺失）。
func (vc VClock) Equal(other VClock) bool {
	return vc.Descends(other) && other.Descends(vc)
}
