package crdt

// PNCounter 实现正负计数器。
// 它由两个 GCounter 组成：P 记录增量，N 记录减量，二者各自单调，
// 合并时独立合并。值为 P 的总和减去 N 的总和，可以为负。
type PNCounter struct {
	P GCounter
	N GCounter
}

// NewPNCounter 创建一个空的 PNCounter。
func NewPNCounter() PNCounter {
	return PNCounter{}
}

// Increment 返回在副本 id 上加一后的新计数器。
func (c PNCounter) Increment(id ReplicaID) PNCounter {
	return PNCounter{P: c.P.Increment(id), N: c.N}
}

// Decrement 返回在副本 id 上减一后的新计数器。
func (c PNCounter) Decrement(id ReplicaID) PNCounter {
	return PNCounter{P: c.P, N: c.N.Increment(id)}
}

// Value 返回当前计数值，没有下界约束。
func (c PNCounter) Value() int64 {
	return int64(c.P.Value()) - int64(c.N.Value())
}

// Merge 独立合并增量与减量两个子计数器。
func (c PNCounter) Merge(other PNCounter) PNCounter {
	return PNCounter{P: c.P.Merge(other.P), N: c.N.Merge(other.N)}
}

// Equal 判断两个计数器状态是否一致。
func (c PNCounter) Equal(other PNCounter) bool {
	return c.P.Equal(other.P) && c.N.Equal(other.N)
}
