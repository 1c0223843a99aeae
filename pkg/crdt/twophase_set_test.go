package crdt

import "testing"

// TestTwoPhaseSet_Basic 测试添加、移除与查询。
func TestTwoPhaseSet_Basic(t *testing.T) {
	s := NewTwoPhaseSet[string]().Add("A").Add("B")
	if !s.Contains("A") || !s.Contains("B") {
		t.Fatal("期望 A 与 B 都有效存在")
	}

	s = s.Remove("A")
	if s.Contains("A") {
		t.Fatal("A 已被移除")
	}
	if !s.Contains("B") {
		t.Fatal("B 不应受影响")
	}
}

// TestTwoPhaseSet_NoResurrection 测试移除后无法重新加入（有意的限制）。
func TestTwoPhaseSet_NoResurrection(t *testing.T) {
	s := NewTwoPhaseSet[string]().Add("A").Remove("A")

	s = s.Add("A") // 无操作
	if s.Contains("A") {
		t.Fatal("被墓碑覆盖的元素不能复活")
	}
}

// TestTwoPhaseSet_RemoveAbsent 测试移除不存在的元素是无操作而非错误。
func TestTwoPhaseSet_RemoveAbsent(t *testing.T) {
	s := NewTwoPhaseSet[string]().Remove("ghost")
	if !s.Equal(NewTwoPhaseSet[string]()) {
		t.Fatal("移除不存在的元素不应留下墓碑")
	}
}

// TestTwoPhaseSet_RemoveWinsAcrossReplicas 测试跨副本的移除胜出：
// A 加入又移除 "foo"，B 在未观察到移除的情况下独立加入 "foo"；
// 合并后 "foo" 不存在——2P-Set 没有时间戳，移除是永久的。
func TestTwoPhaseSet_RemoveWinsAcrossReplicas(t *testing.T) {
	a := NewTwoPhaseSet[string]().Add("foo").Remove("foo")
	b := NewTwoPhaseSet[string]().Add("foo")

	merged := a.Merge(b)
	if merged.Contains("foo") {
		t.Fatal("合并后 foo 不应有效存在（移除胜出）")
	}
	if !merged.Equal(b.Merge(a)) {
		t.Fatal("合并应满足交换律")
	}
}
