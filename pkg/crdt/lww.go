package crdt

// LWWRegister 实现最后写入胜出 (Last-Writer-Wins) 寄存器。
// 状态是 (值, 逻辑时间戳, 副本标识)。时间戳由调用方提供，
// 必须在每个副本内严格单调递增（例如来自 pkg/clock 的 Lamport 时钟）——
// 核心不读取任何时钟，保证算法纯确定性。
// 合并保留时间戳更大的一方；时间戳相等时保留副本标识更大的一方，
// 因此所有副本对同一对输入总是计算出同一个胜者。
type LWWRegister[T comparable] struct {
	Val       T
	Timestamp int64
	Replica   ReplicaID
}

// NewLWWRegister 创建一个空的寄存器（时间戳 0，值为 T 的零值）。
func NewLWWRegister[T comparable]() LWWRegister[T] {
	return LWWRegister[T]{}
}

// Assign 返回以 (ts, id) 为戳记写入 value 后的新寄存器。
// 调用方必须保证 ts 大于该副本先前使用过的所有时间戳。
func (r LWWRegister[T]) Assign(value T, ts int64, id ReplicaID) LWWRegister[T] {
	return LWWRegister[T]{Val: value, Timestamp: ts, Replica: id}
}

// Value 返回当前寄存器的值。
func (r LWWRegister[T]) Value() T {
	return r.Val
}

// Merge 保留 (时间戳, 副本标识) 字典序更大的一方。
func (r LWWRegister[T]) Merge(other LWWRegister[T]) LWWRegister[T] {
	if stampLess(r.Timestamp, r.Replica, other.Timestamp, other.Replica) {
		return other
	}
	return r
}

// Equal 判断两个寄存器状态是否一致。
func (r LWWRegister[T]) Equal(other LWWRegister[T]) bool {
	return r.Val == other.Val && r.Timestamp == other.Timestamp && r.Replica == other.Replica
}

// LWWFlag 是布尔载荷的 LWW 寄存器，提供启用/停用语义。
// 平局裁决规则与 LWWRegister 完全相同。零值为 (false, 0, "")。
type LWWFlag struct {
	Enabled   bool
	Timestamp int64
	Replica   ReplicaID
}

// NewLWWFlag 创建一个停用状态的标志。
func NewLWWFlag() LWWFlag {
	return LWWFlag{}
}

// Enable 返回以 (ts, id) 为戳记置为启用后的新标志。
func (f LWWFlag) Enable(ts int64, id ReplicaID) LWWFlag {
	return LWWFlag{Enabled: true, Timestamp: ts, Replica: id}
}

// Disable 返回以 (ts, id) 为戳记置为停用后的新标志。
func (f LWWFlag) Disable(ts int64, id ReplicaID) LWWFlag {
	return LWWFlag{Enabled: false, Timestamp: ts, Replica: id}
}

// Value 返回标志当前是否启用。
func (f LWWFlag) Value() bool {
	return f.Enabled
}

// Merge 保留 (时间戳, 副本标识) 字典序更大的一方。
func (f LWWFlag) Merge(other LWWFlag) LWWFlag {
	if stampLess(f.Timestamp, f.Replica, other.Timestamp, other.Replica) {
		return other
	}
	return f
}

// Equal 判断两个标志状态是否一致。
func (f LWWFlag) Equal(other LWWFlag) bool {
	return f.Enabled == other.Enabled && f.Timestamp == other.Timestamp && f.Replica == other.Replica
}

// stampLess 按 (时间戳, 副本标识) 字典序比较两个写入戳记。
func stampLess(aTs int64, aID ReplicaID, bTs int64, bID ReplicaID) bool {
	if aTs != bTs {
		return aTs < bTs
	}
	return aID < bID
}
