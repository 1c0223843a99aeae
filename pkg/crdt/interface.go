package crdt

import "github.com/google/uuid"

// ReplicaID 唯一标识一个副本（参与者）。
// 它是不透明的字符串，按 Go 字符串比较构成全序，用于 LWW 的平局裁决和 ORSet 的标记。
type ReplicaID string

// CvRDT 是所有状态式 (state-based) CRDT 的通用约束。
//
// 约定：
//   - T 的零值即为 bottom（最小元素 / 初始空状态），Merge(bottom, x) = x。
//   - Merge 必须构成半格连接：幂等、交换、结合。
//   - 所有本地操作（Increment、Add、Assign 等）都返回新值，
//     且在 Merge 诱导的偏序下不小于旧值：Merge(old, new) = new。
//   - 值被视为不可变快照，合并与本地操作都不原地修改输入。
type CvRDT[T any] interface {
	// Merge 将另一个同类型状态与当前状态连接，返回最小上界。
	Merge(other T) T

	// Equal 判断两个状态是否相等（nil 映射与空映射视为相同）。
	Equal(other T) bool
}

// NewReplicaID 在副本引导时生成一个随机的全局唯一副本标识。
// 调用方也可以使用任何自备的全序标识（如节点名）。
func NewReplicaID() ReplicaID {
	return ReplicaID(uuid.NewString())
}
