package crdt

// Tag 是 ORSet 中一次 add 操作的全局唯一标记。
// 唯一性来自副本标识的互异加上每副本序号的本地单调，无需任何协调。
type Tag struct {
	Replica ReplicaID
	Seq     uint64
}

// TagGen 为单个副本生成单调递增的唯一标记。
// 它由调用方持有并传入，不是隐藏的全局状态；
// 同一个副本标识只能由一个 TagGen 使用，否则唯一性被破坏。
type TagGen struct {
	replica ReplicaID
	seq     uint64
}

// NewTagGen 为副本 id 创建标记生成器。
func NewTagGen(id ReplicaID) *TagGen {
	return &TagGen{replica: id}
}

// Next 返回下一个全新标记。
func (g *TagGen) Next() Tag {
	g.seq++
	return Tag{Replica: g.replica, Seq: g.seq}
}
