package crdt

// MVPair 是多值寄存器中的一条写入：载荷加上它的版本向量。
type MVPair[T comparable] struct {
	Val     T
	Version VClock
}

// MVRegister 实现多值寄存器 (Multi-Value Register)。
// 状态是一组 (值, 版本向量) 对，其中只有互不可比（并发）的版本共存；
// 被支配的版本在赋值与合并时都会被剪除。读取返回所有幸存的载荷：
// 超过一个说明存在未决的并发写入，由应用层自行裁决，核心不做静默丢弃。
type MVRegister[T comparable] struct {
	Pairs []MVPair[T]
}

// NewMVRegister 创建一个空的多值寄存器。
func NewMVRegister[T comparable]() MVRegister[T] {
	return MVRegister[T]{}
}

// Assign 返回副本 id 写入 value 后的新寄存器。
// 新写入的版本向量取当前所有版本的逐点最大值并在 id 槽位加一，
// 因此它严格支配当前的每一个版本，旧版本全部被剪除。
func (r MVRegister[T]) Assign(value T, id ReplicaID) MVRegister[T] {
	version := VClock{}
	for _, p := range r.Pairs {
		version = version.Merge(p.Version)
	}
	version = version.Tick(id)
	return MVRegister[T]{Pairs: []MVPair[T]{{Val: value, Version: version}}}
}

// Values 返回所有幸存载荷，顺序不保证。
func (r MVRegister[T]) Values() []T {
	res := make([]T, 0, len(r.Pairs))
	for _, p := range r.Pairs {
		res = append(res, p.Val)
	}
	return res
}

// Merge 取两组写入的并集，然后只保留版本互不可比的极大元。
func (r MVRegister[T]) Merge(other MVRegister[T]) MVRegister[T] {
	union := make([]MVPair[T], 0, len(r.Pairs)+len(other.Pairs))
	union = append(union, r.Pairs...)
	for _, p := range other.Pairs {
		if !containsPair(union, p) {
			union = append(union, p)
		}
	}

	// 显式的支配剪除：保留不被任何其他成员严格支配的写入。
	survivors := make([]MVPair[T], 0, len(union))
	for i, p := range union {
		dominated := false
		for j, q := range union {
			if i != j && q.Version.Dominates(p.Version) {
				dominated = true
				break
			}
		}
		if !dominated {
			survivors = append(survivors, p)
		}
	}
	return MVRegister[T]{Pairs: survivors}
}

// Equal 判断两个寄存器是否保存同一组写入（忽略顺序）。
func (r MVRegister[T]) Equal(other MVRegister[T]) bool {
	if len(r.Pairs) != len(other.Pairs) {
		return false
	}
	for _, p := range r.Pairs {
		if !containsPair(other.Pairs, p) {
			return false
		}
	}
	return true
}

func containsPair[T comparable](pairs []MVPair[T], p MVPair[T]) bool {
	for _, q := range pairs {
		if q.Val == p.Val && q.Version.Equal(p.Version) {
			return true
		}
	}
	return false
}
