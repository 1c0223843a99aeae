package crdt

import "testing"

// TestMap_UpdateAndGet 测试按键更新与缺失键返回 bottom。
func TestMap_UpdateAndGet(t *testing.T) {
	m := NewMap[string, PNCounter]()

	m = m.Update("hits", func(c PNCounter) PNCounter { return c.Increment("A") })
	m = m.Update("hits", func(c PNCounter) PNCounter { return c.Increment("A") })

	if v := m.Get("hits").Value(); v != 2 {
		t.Fatalf("期望 hits=2, 实际为 %d", v)
	}
	if v := m.Get("missing").Value(); v != 0 {
		t.Fatalf("缺失键应返回 bottom, 实际值为 %d", v)
	}
}

// TestMap_DisjointKeysIndependent 测试逐键独立性：
// 两个副本各自更新不相交的键，合并后两个键都在，
// 且每个计数器的值不受另一个键的更新影响。
func TestMap_DisjointKeysIndependent(t *testing.T) {
	a := NewMap[string, PNCounter]().
		Update("apples", func(c PNCounter) PNCounter { return c.Increment("A") }).
		Update("apples", func(c PNCounter) PNCounter { return c.Increment("A") })
	b := NewMap[string, PNCounter]().
		Update("bananas", func(c PNCounter) PNCounter { return c.Decrement("B") })

	merged := a.Merge(b)
	if v := merged.Get("apples").Value(); v != 2 {
		t.Fatalf("期望 apples=2, 实际为 %d", v)
	}
	if v := merged.Get("bananas").Value(); v != -1 {
		t.Fatalf("期望 bananas=-1, 实际为 %d", v)
	}
	if !merged.Equal(b.Merge(a)) {
		t.Fatal("合并应满足交换律")
	}
}

// TestMap_SameKeyMergesPointwise 测试同一个键下按值类型的语义合并。
func TestMap_SameKeyMergesPointwise(t *testing.T) {
	a := NewMap[string, PNCounter]().
		Update("n", func(c PNCounter) PNCounter { return c.Increment("A") })
	b := NewMap[string, PNCounter]().
		Update("n", func(c PNCounter) PNCounter { return c.Increment("B") })

	merged := a.Merge(b)
	if v := merged.Get("n").Value(); v != 2 {
		t.Fatalf("期望 n=2, 实际为 %d", v)
	}
}

// TestMap_BottomEntryEqualsAbsent 测试持有 bottom 值的键与缺失键等价。
func TestMap_BottomEntryEqualsAbsent(t *testing.T) {
	withBottom := NewMap[string, PNCounter]().Update("k", func(c PNCounter) PNCounter { return c })
	if !withBottom.Equal(NewMap[string, PNCounter]()) {
		t.Fatal("bottom 条目应等价于缺失的键")
	}
}

// TestMap_NestedSets 测试值类型为集合的组合。
func TestMap_NestedSets(t *testing.T) {
	m := NewMap[string, GSet[string]]().
		Update("tags", func(s GSet[string]) GSet[string] { return s.Add("go") }).
		Update("tags", func(s GSet[string]) GSet[string] { return s.Add("crdt") })

	if !m.Get("tags").Contains("go") || !m.Get("tags").Contains("crdt") {
		t.Fatal("期望 tags 同时包含 go 与 crdt")
	}
}
