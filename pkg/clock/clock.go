// Package clock 提供 Lamport 逻辑时钟，是 LWW 类型所需的时间戳协作者。
// 核心算法（pkg/crdt）从不自己读取时钟：调用方在每个副本持有一个 Clock，
// 本地写入前取 Tick，收到远程时间戳时用 Observe 推进，
// 即可获得每副本严格单调、跨副本可比的 int64 时间戳。
package clock

import "sync"

// Clock 是单个副本持有的 Lamport 时钟。
// 它保证 Tick 的返回值严格大于此前所有 Tick 返回值以及所有 Observe 过的远程时间戳。
type Clock struct {
	mu     sync.Mutex
	latest int64
}

// New 创建一个从 0 开始的时钟。
func New() *Clock {
	return &Clock{}
}

// Tick 为一次本地事件推进时钟并返回新的时间戳。
func (c *Clock) Tick() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latest++
	return c.latest
}

// Observe 根据收到的远程时间戳推进时钟并返回推进后的值。
// 推进规则是 Lamport 的接收规则：latest = max(latest, remote) + 1。
func (c *Clock) Observe(remote int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if remote > c.latest {
		c.latest = remote
	}
	c.latest++
	return c.latest
}

// Latest 返回当前已知的最大时间戳，不推进时钟。
func (c *Clock) Latest() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest
}
