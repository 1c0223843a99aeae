package main

import (
	"fmt"

	"github.com/shinyes/yep_cvrdt/pkg/clock"
	"github.com/shinyes/yep_cvrdt/pkg/codec"
	"github.com/shinyes/yep_cvrdt/pkg/crdt"
)

func main() {
	fmt.Println("=== yep_cvrdt API 示例 ===")

	// 每个副本引导时获得唯一标识；这里再配一个可读的别名方便打印。
	replicaA := crdt.NewReplicaID()
	replicaB := crdt.NewReplicaID()
	fmt.Printf("副本 A: %s\n副本 B: %s\n", replicaA, replicaB)

	// 1. PN 计数器：两个副本独立计数，合并后收敛
	a := crdt.NewPNCounter().Increment(replicaA).Increment(replicaA)
	b := crdt.NewPNCounter().Decrement(replicaB)
	fmt.Printf("PNCounter: A=%d, B=%d, 合并=%d\n", a.Value(), b.Value(), a.Merge(b).Value())

	// 2. ORSet：并发的添加与移除，添加胜出
	genA := crdt.NewTagGen(replicaA)
	setA := crdt.NewORSet[string]().Add("x", genA.Next())
	setB := crdt.NewORSet[string]().Merge(setA).Remove("x") // B 观察到后移除
	setA = setA.Add("x", genA.Next())                       // A 并发地再次添加
	fmt.Printf("ORSet 合并后包含 x: %v\n", setA.Merge(setB).Contains("x"))

	// 3. LWW 寄存器：时间戳来自调用方持有的 Lamport 时钟
	clockA, clockB := clock.New(), clock.New()
	regA := crdt.NewLWWRegister[string]().Assign("hello", clockA.Tick(), replicaA)
	clockB.Observe(regA.Timestamp)
	regB := regA.Assign("world", clockB.Tick(), replicaB)
	fmt.Printf("LWWRegister 合并后: %s\n", regA.Merge(regB).Value())

	// 4. 组合映射：逐键独立的 PN 计数器
	inv := crdt.NewMap[string, crdt.PNCounter]().
		Update("apples", func(c crdt.PNCounter) crdt.PNCounter { return c.Increment(replicaA) }).
		Update("bananas", func(c crdt.PNCounter) crdt.PNCounter { return c.Increment(replicaA) })
	fmt.Printf("Map: apples=%d bananas=%d\n", inv.Get("apples").Value(), inv.Get("bananas").Value())

	// 5. 快照字节：经 codec 往返后照常参与合并
	data, err := codec.EncodeORSet(setA)
	if err != nil {
		fmt.Printf("编码失败: %v\n", err)
		return
	}
	decoded, err := codec.DecodeORSet[string](data)
	if err != nil {
		fmt.Printf("解码失败: %v\n", err)
		return
	}
	fmt.Printf("codec 往返后状态一致: %v (%d 字节)\n", decoded.Equal(setA), len(data))
}
