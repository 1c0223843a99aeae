// Package codec 是序列化协作者：把各 CRDT 状态编码为 msgpack 快照字节，
// 供任意传输/存储层搬运。核心算法不定义线格式，也假定输入满足不变量，
// 因此对外部字节的校验与规范化都发生在这里的解码路径上：
// 重复铸造的标记会被拒绝，已落墓碑的标记、被支配的版本会被剪除。
package codec

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/shinyes/yep_cvrdt/pkg/crdt"
)

type tagState struct {
	Replica string `msgpack:"replica"`
	Seq     uint64 `msgpack:"seq"`
}

func toTagState(t crdt.Tag) tagState {
	return tagState{Replica: string(t.Replica), Seq: t.Seq}
}

func (t tagState) tag() crdt.Tag {
	return crdt.Tag{Replica: crdt.ReplicaID(t.Replica), Seq: t.Seq}
}

// EncodeGCounter 序列化 GCounter。
func EncodeGCounter(c crdt.GCounter) ([]byte, error) {
	return msgpack.Marshal(c.Counts)
}

// DecodeGCounter 反序列化 GCounter，丢弃值为 0 的槽位以保持规范形式。
func DecodeGCounter(data []byte) (crdt.GCounter, error) {
	var counts map[crdt.ReplicaID]uint64
	if err := msgpack.Unmarshal(data, &counts); err != nil {
		return crdt.GCounter{}, fmt.Errorf("decode GCounter: %w", err)
	}
	for k, v := range counts {
		if v == 0 {
			delete(counts, k)
		}
	}
	if len(counts) == 0 {
		return crdt.GCounter{}, nil
	}
	return crdt.GCounter{Counts: counts}, nil
}

type pncounterState struct {
	P map[crdt.ReplicaID]uint64 `msgpack:"p"`
	N map[crdt.ReplicaID]uint64 `msgpack:"n"`
}

// EncodePNCounter 序列化 PNCounter。
func EncodePNCounter(c crdt.PNCounter) ([]byte, error) {
	return msgpack.Marshal(pncounterState{P: c.P.Counts, N: c.N.Counts})
}

// DecodePNCounter 反序列化 PNCounter。
func DecodePNCounter(data []byte) (crdt.PNCounter, error) {
	var state pncounterState
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return crdt.PNCounter{}, fmt.Errorf("decode PNCounter: %w", err)
	}
	p, err := decodeCounts(state.P)
	if err != nil {
		return crdt.PNCounter{}, err
	}
	n, err := decodeCounts(state.N)
	if err != nil {
		return crdt.PNCounter{}, err
	}
	return crdt.PNCounter{P: p, N: n}, nil
}

func decodeCounts(counts map[crdt.ReplicaID]uint64) (crdt.GCounter, error) {
	for k, v := range counts {
		if v == 0 {
			delete(counts, k)
		}
	}
	if len(counts) == 0 {
		return crdt.GCounter{}, nil
	}
	return crdt.GCounter{Counts: counts}, nil
}

// EncodeGSet 序列化 GSet。
func EncodeGSet[T comparable](s crdt.GSet[T]) ([]byte, error) {
	return msgpack.Marshal(s.Elements())
}

// DecodeGSet 反序列化 GSet，重复元素会被自然去重。
func DecodeGSet[T comparable](data []byte) (crdt.GSet[T], error) {
	var elems []T
	if err := msgpack.Unmarshal(data, &elems); err != nil {
		return crdt.GSet[T]{}, fmt.Errorf("decode GSet: %w", err)
	}
	return setOf(elems), nil
}

func setOf[T comparable](elems []T) crdt.GSet[T] {
	if len(elems) == 0 {
		return crdt.GSet[T]{}
	}
	set := make(map[T]struct{}, len(elems))
	for _, e := range elems {
		set[e] = struct{}{}
	}
	return crdt.GSet[T]{Elems: set}
}

type twoPhaseState[T comparable] struct {
	Added   []T `msgpack:"added"`
	Removed []T `msgpack:"removed"`
}

// EncodeTwoPhaseSet 序列化 2P-Set。
func EncodeTwoPhaseSet[T comparable](s crdt.TwoPhaseSet[T]) ([]byte, error) {
	return msgpack.Marshal(twoPhaseState[T]{
		Added:   s.Added.Elements(),
		Removed: s.Removed.Elements(),
	})
}

// DecodeTwoPhaseSet 反序列化 2P-Set。
func DecodeTwoPhaseSet[T comparable](data []byte) (crdt.TwoPhaseSet[T], error) {
	var state twoPhaseState[T]
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return crdt.TwoPhaseSet[T]{}, fmt.Errorf("decode TwoPhaseSet: %w", err)
	}
	return crdt.TwoPhaseSet[T]{
		Added:   setOf(state.Added),
		Removed: setOf(state.Removed),
	}, nil
}

type lwwState[T comparable] struct {
	Val       T      `msgpack:"val"`
	Timestamp int64  `msgpack:"ts"`
	Replica   string `msgpack:"replica"`
}

// EncodeLWWRegister 序列化 LWWRegister。
func EncodeLWWRegister[T comparable](r crdt.LWWRegister[T]) ([]byte, error) {
	return msgpack.Marshal(lwwState[T]{Val: r.Val, Timestamp: r.Timestamp, Replica: string(r.Replica)})
}

// DecodeLWWRegister 反序列化 LWWRegister。
func DecodeLWWRegister[T comparable](data []byte) (crdt.LWWRegister[T], error) {
	var state lwwState[T]
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return crdt.LWWRegister[T]{}, fmt.Errorf("decode LWWRegister: %w", err)
	}
	return crdt.LWWRegister[T]{
		Val:       state.Val,
		Timestamp: state.Timestamp,
		Replica:   crdt.ReplicaID(state.Replica),
	}, nil
}

type lwwFlagState struct {
	Enabled   bool   `msgpack:"enabled"`
	Timestamp int64  `msgpack:"ts"`
	Replica   string `msgpack:"replica"`
}

// EncodeLWWFlag 序列化 LWWFlag。
func EncodeLWWFlag(f crdt.LWWFlag) ([]byte, error) {
	return msgpack.Marshal(lwwFlagState{Enabled: f.Enabled, Timestamp: f.Timestamp, Replica: string(f.Replica)})
}

// DecodeLWWFlag 反序列化 LWWFlag。
func DecodeLWWFlag(data []byte) (crdt.LWWFlag, error) {
	var state lwwFlagState
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return crdt.LWWFlag{}, fmt.Errorf("decode LWWFlag: %w", err)
	}
	return crdt.LWWFlag{
		Enabled:   state.Enabled,
		Timestamp: state.Timestamp,
		Replica:   crdt.ReplicaID(state.Replica),
	}, nil
}

type mvPairState[T comparable] struct {
	Val     T                         `msgpack:"val"`
	Version map[crdt.ReplicaID]uint64 `msgpack:"version"`
}

// EncodeMVRegister 序列化 MVRegister。
func EncodeMVRegister[T comparable](r crdt.MVRegister[T]) ([]byte, error) {
	pairs := make([]mvPairState[T], 0, len(r.Pairs))
	for _, p := range r.Pairs {
		pairs = append(pairs, mvPairState[T]{Val: p.Val, Version: p.Version})
	}
	return msgpack.Marshal(pairs)
}

// DecodeMVRegister 反序列化 MVRegister。
// 被其他成员支配的版本在这里被剪除，使外部字节回到规范形式。
func DecodeMVRegister[T comparable](data []byte) (crdt.MVRegister[T], error) {
	var pairs []mvPairState[T]
	if err := msgpack.Unmarshal(data, &pairs); err != nil {
		return crdt.MVRegister[T]{}, fmt.Errorf("decode MVRegister: %w", err)
	}
	raw := crdt.MVRegister[T]{}
	for _, p := range pairs {
		version := crdt.VClock(p.Version)
		for k, v := range version {
			if v == 0 {
				delete(version, k)
			}
		}
		pair := crdt.MVPair[T]{Val: p.Val, Version: version}
		dup := false
		for _, q := range raw.Pairs {
			if q.Val == pair.Val && q.Version.Equal(pair.Version) {
				dup = true
				break
			}
		}
		if !dup {
			raw.Pairs = append(raw.Pairs, pair)
		}
	}
	// 与 bottom 合并即完成支配剪除。
	return raw.Merge(crdt.MVRegister[T]{}), nil
}

type orsetEntryState[T comparable] struct {
	Elem T          `msgpack:"elem"`
	Tags []tagState `msgpack:"tags"`
}

type orsetState[T comparable] struct {
	Elems      []orsetEntryState[T] `msgpack:"elems"`
	Tombstones []tagState           `msgpack:"tombstones"`
}

// EncodeORSet 序列化 ORSet。
func EncodeORSet[T comparable](s crdt.ORSet[T]) ([]byte, error) {
	state := orsetState[T]{}
	for e, tags := range s.Elems {
		entry := orsetEntryState[T]{Elem: e}
		for t := range tags {
			entry.Tags = append(entry.Tags, toTagState(t))
		}
		state.Elems = append(state.Elems, entry)
	}
	for t := range s.Tombstones {
		state.Tombstones = append(state.Tombstones, toTagState(t))
	}
	return msgpack.Marshal(state)
}

// DecodeORSet 反序列化 ORSet。
// 同一个标记出现在两个元素下意味着两次 add 铸造了同一标记，
// 属于畸形输入，直接报错；已落墓碑的标记被剪除以恢复规范形式。
func DecodeORSet[T comparable](data []byte) (crdt.ORSet[T], error) {
	var state orsetState[T]
	if err := msgpack.Unmarshal(data, &state); err != nil {
		return crdt.ORSet[T]{}, fmt.Errorf("decode ORSet: %w", err)
	}

	owner := make(map[crdt.Tag]T)
	raw := crdt.ORSet[T]{Elems: make(map[T]map[crdt.Tag]struct{})}
	for _, entry := range state.Elems {
		for _, ts := range entry.Tags {
			tag := ts.tag()
			if prev, seen := owner[tag]; seen && prev != entry.Elem {
				return crdt.ORSet[T]{}, fmt.Errorf("decode ORSet: tag %v minted for two elements", tag)
			}
			owner[tag] = entry.Elem
			if raw.Elems[entry.Elem] == nil {
				raw.Elems[entry.Elem] = make(map[crdt.Tag]struct{})
			}
			raw.Elems[entry.Elem][tag] = struct{}{}
		}
	}
	if len(state.Tombstones) > 0 {
		raw.Tombstones = make(map[crdt.Tag]struct{}, len(state.Tombstones))
		for _, ts := range state.Tombstones {
			raw.Tombstones[ts.tag()] = struct{}{}
		}
	}
	// 与 bottom 合并即剪除墓碑标记与空元素。
	return raw.Merge(crdt.ORSet[T]{}), nil
}

type mapEntryState[K comparable] struct {
	Key  K      `msgpack:"key"`
	Data []byte `msgpack:"data"`
}

// EncodeMap 序列化 Map，键下的状态由调用方提供的 encodeVal 编码。
func EncodeMap[K comparable, V crdt.CvRDT[V]](m crdt.Map[K, V], encodeVal func(V) ([]byte, error)) ([]byte, error) {
	entries := make([]mapEntryState[K], 0, len(m.Entries))
	for k, v := range m.Entries {
		data, err := encodeVal(v)
		if err != nil {
			return nil, fmt.Errorf("encode Map entry %v: %w", k, err)
		}
		entries = append(entries, mapEntryState[K]{Key: k, Data: data})
	}
	return msgpack.Marshal(entries)
}

// DecodeMap 反序列化 Map，键下的字节由调用方提供的 decodeVal 解码。
// 重复出现的键按 CRDT 语义合并而不是覆盖。
func DecodeMap[K comparable, V crdt.CvRDT[V]](data []byte, decodeVal func([]byte) (V, error)) (crdt.Map[K, V], error) {
	var entries []mapEntryState[K]
	if err := msgpack.Unmarshal(data, &entries); err != nil {
		return crdt.Map[K, V]{}, fmt.Errorf("decode Map: %w", err)
	}
	if len(entries) == 0 {
		return crdt.Map[K, V]{}, nil
	}
	m := crdt.Map[K, V]{Entries: make(map[K]V, len(entries))}
	for _, entry := range entries {
		v, err := decodeVal(entry.Data)
		if err != nil {
			return crdt.Map[K, V]{}, fmt.Errorf("decode Map entry %v: %w", entry.Key, err)
		}
		if cur, ok := m.Entries[entry.Key]; ok {
			v = cur.Merge(v)
		}
		m.Entries[entry.Key] = v
	}
	return m, nil
}
