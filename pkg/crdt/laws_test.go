package crdt

import (
	"math/rand"
	"testing"

	"github.com/shinyes/yep_cvrdt/pkg/laws"
)

// 所有生成器共用的副本集合。
var lawReplicas = []ReplicaID{"A", "B", "C"}

func pickReplica(r *rand.Rand) ReplicaID {
	return lawReplicas[r.Intn(len(lawReplicas))]
}

// TestGCounter_Laws 验证 GCounter 满足半格定律。
func TestGCounter_Laws(t *testing.T) {
	gen := func(r *rand.Rand) GCounter {
		c := NewGCounter()
		for i, n := 0, r.Intn(8); i < n; i++ {
			c = c.Increment(pickReplica(r))
		}
		return c
	}
	laws.Check(t, laws.Config[GCounter]{
		Gen:    gen,
		Mutate: func(r *rand.Rand, c GCounter) GCounter { return c.Increment(pickReplica(r)) },
		Merge:  GCounter.Merge,
		Equal:  GCounter.Equal,
		Bottom: NewGCounter(),
	})
}

// TestPNCounter_Laws 验证 PNCounter 满足半格定律。
func TestPNCounter_Laws(t *testing.T) {
	gen := func(r *rand.Rand) PNCounter {
		c := NewPNCounter()
		for i, n := 0, r.Intn(8); i < n; i++ {
			if r.Intn(2) == 0 {
				c = c.Increment(pickReplica(r))
			} else {
				c = c.Decrement(pickReplica(r))
			}
		}
		return c
	}
	laws.Check(t, laws.Config[PNCounter]{
		Gen: gen,
		Mutate: func(r *rand.Rand, c PNCounter) PNCounter {
			if r.Intn(2) == 0 {
				return c.Increment(pickReplica(r))
			}
			return c.Decrement(pickReplica(r))
		},
		Merge:  PNCounter.Merge,
		Equal:  PNCounter.Equal,
		Bottom: NewPNCounter(),
	})
}

func pickWord(r *rand.Rand) string {
	words := []string{"a", "b", "c", "d", "e"}
	return words[r.Intn(len(words))]
}

// TestGSet_Laws 验证 GSet 满足半格定律。
func TestGSet_Laws(t *testing.T) {
	gen := func(r *rand.Rand) GSet[string] {
		s := NewGSet[string]()
		for i, n := 0, r.Intn(6); i < n; i++ {
			s = s.Add(pickWord(r))
		}
		return s
	}
	laws.Check(t, laws.Config[GSet[string]]{
		Gen:    gen,
		Mutate: func(r *rand.Rand, s GSet[string]) GSet[string] { return s.Add(pickWord(r)) },
		Merge:  GSet[string].Merge,
		Equal:  GSet[string].Equal,
		Bottom: NewGSet[string](),
	})
}

// TestTwoPhaseSet_Laws 验证 2P-Set 满足半格定律。
func TestTwoPhaseSet_Laws(t *testing.T) {
	mutate := func(r *rand.Rand, s TwoPhaseSet[string]) TwoPhaseSet[string] {
		if r.Intn(3) == 0 {
			return s.Remove(pickWord(r))
		}
		return s.Add(pickWord(r))
	}
	gen := func(r *rand.Rand) TwoPhaseSet[string] {
		s := NewTwoPhaseSet[string]()
		for i, n := 0, r.Intn(8); i < n; i++ {
			s = mutate(r, s)
		}
		return s
	}
	laws.Check(t, laws.Config[TwoPhaseSet[string]]{
		Gen:    gen,
		Mutate: mutate,
		Merge:  TwoPhaseSet[string].Merge,
		Equal:  TwoPhaseSet[string].Equal,
		Bottom: NewTwoPhaseSet[string](),
	})
}

// lamportStamps 为 LWW 生成器维护每副本单调的调用方时间戳。
type lamportStamps map[ReplicaID]int64

func (ls lamportStamps) next(r *rand.Rand, id ReplicaID, atLeast int64) int64 {
	ts := ls[id]
	if atLeast > ts {
		ts = atLeast
	}
	ts += 1 + int64(r.Intn(3))
	ls[id] = ts
	return ts
}

// TestLWWRegister_Laws 验证 LWWRegister 满足半格定律。
func TestLWWRegister_Laws(t *testing.T) {
	stamps := lamportStamps{}
	gen := func(r *rand.Rand) LWWRegister[string] {
		reg := NewLWWRegister[string]()
		for i, n := 0, r.Intn(4); i < n; i++ {
			id := pickReplica(r)
			reg = reg.Assign(pickWord(r), stamps.next(r, id, reg.Timestamp), id)
		}
		return reg
	}
	laws.Check(t, laws.Config[LWWRegister[string]]{
		Gen: gen,
		Mutate: func(r *rand.Rand, reg LWWRegister[string]) LWWRegister[string] {
			id := pickReplica(r)
			return reg.Assign(pickWord(r), stamps.next(r, id, reg.Timestamp), id)
		},
		Merge:  LWWRegister[string].Merge,
		Equal:  LWWRegister[string].Equal,
		Bottom: NewLWWRegister[string](),
	})
}

// TestLWWFlag_Laws 验证 LWWFlag 满足半格定律。
func TestLWWFlag_Laws(t *testing.T) {
	stamps := lamportStamps{}
	mutate := func(r *rand.Rand, f LWWFlag) LWWFlag {
		id := pickReplica(r)
		ts := stamps.next(r, id, f.Timestamp)
		if r.Intn(2) == 0 {
			return f.Enable(ts, id)
		}
		return f.Disable(ts, id)
	}
	gen := func(r *rand.Rand) LWWFlag {
		f := NewLWWFlag()
		for i, n := 0, r.Intn(4); i < n; i++ {
			f = mutate(r, f)
		}
		return f
	}
	laws.Check(t, laws.Config[LWWFlag]{
		Gen:    gen,
		Mutate: mutate,
		Merge:  LWWFlag.Merge,
		Equal:  LWWFlag.Equal,
		Bottom: NewLWWFlag(),
	})
}

// TestMVRegister_Laws 验证 MVRegister 满足半格定律。
// 生成器递归合并独立赋值的分支，以覆盖并发（多值）状态。
func TestMVRegister_Laws(t *testing.T) {
	var gen func(r *rand.Rand, depth int) MVRegister[string]
	gen = func(r *rand.Rand, depth int) MVRegister[string] {
		if depth > 0 && r.Intn(2) == 0 {
			return gen(r, depth-1).Merge(gen(r, depth-1))
		}
		reg := NewMVRegister[string]()
		for i, n := 0, r.Intn(4); i < n; i++ {
			reg = reg.Assign(pickWord(r), pickReplica(r))
		}
		return reg
	}
	laws.Check(t, laws.Config[MVRegister[string]]{
		Gen: func(r *rand.Rand) MVRegister[string] { return gen(r, 2) },
		Mutate: func(r *rand.Rand, reg MVRegister[string]) MVRegister[string] {
			return reg.Assign(pickWord(r), pickReplica(r))
		},
		Merge:  MVRegister[string].Merge,
		Equal:  MVRegister[string].Equal,
		Bottom: NewMVRegister[string](),
	})
}

// TestORSet_Laws 验证 ORSet 满足半格定律。
// 所有生成的状态共享同一组 TagGen，保证标记全局唯一、状态可以互相合并。
func TestORSet_Laws(t *testing.T) {
	gens := map[ReplicaID]*TagGen{}
	for _, id := range lawReplicas {
		gens[id] = NewTagGen(id)
	}
	mutate := func(r *rand.Rand, s ORSet[string]) ORSet[string] {
		if r.Intn(3) == 0 {
			return s.Remove(pickWord(r))
		}
		return s.Add(pickWord(r), gens[pickReplica(r)].Next())
	}
	var gen func(r *rand.Rand, depth int) ORSet[string]
	gen = func(r *rand.Rand, depth int) ORSet[string] {
		if depth > 0 && r.Intn(2) == 0 {
			return gen(r, depth-1).Merge(gen(r, depth-1))
		}
		s := NewORSet[string]()
		for i, n := 0, r.Intn(6); i < n; i++ {
			s = mutate(r, s)
		}
		return s
	}
	laws.Check(t, laws.Config[ORSet[string]]{
		Gen:    func(r *rand.Rand) ORSet[string] { return gen(r, 2) },
		Mutate: mutate,
		Merge:  ORSet[string].Merge,
		Equal:  ORSet[string].Equal,
		Bottom: NewORSet[string](),
	})
}

// TestMap_Laws 验证 PN 计数器映射满足半格定律。
func TestMap_Laws(t *testing.T) {
	mutate := func(r *rand.Rand, m Map[string, PNCounter]) Map[string, PNCounter] {
		id := pickReplica(r)
		if r.Intn(2) == 0 {
			return m.Update(pickWord(r), func(c PNCounter) PNCounter { return c.Increment(id) })
		}
		return m.Update(pickWord(r), func(c PNCounter) PNCounter { return c.Decrement(id) })
	}
	gen := func(r *rand.Rand) Map[string, PNCounter] {
		m := NewMap[string, PNCounter]()
		for i, n := 0, r.Intn(8); i < n; i++ {
			m = mutate(r, m)
		}
		return m
	}
	laws.Check(t, laws.Config[Map[string, PNCounter]]{
		Gen:    gen,
		Mutate: mutate,
		Merge:  Map[string, PNCounter].Merge,
		Equal:  Map[string, PNCounter].Equal,
		Bottom: NewMap[string, PNCounter](),
	})
}
