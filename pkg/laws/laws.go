// Package laws 提供通用的半格定律检查器。
//
// 任何状态式 CRDT 都必须满足四条定律——幂等、交换、结合、以 bottom 为单位元，
// 外加本地操作的单调性。本包对任意具体类型做随机化试验来验证这些定律，
// 充当各 CRDT 测试共用的性质测试骨架。试验使用固定种子，结果完全可复现。
package laws

import (
	"math/rand"
	"testing"
)

// Config 描述一个被检查类型的生成器与运算。
type Config[T any] struct {
	// Gen 生成一个任意可达状态。
	// 同一次 Check 内多次调用产生的状态必须可以合法互相合并
	//（例如 ORSet 的标记不得跨状态重复）。
	Gen func(r *rand.Rand) T

	// Mutate 对状态施加一个随机本地操作并返回新状态。
	// 为 nil 时跳过单调性检查。
	Mutate func(r *rand.Rand, v T) T

	// Merge 是被检查的连接运算。
	Merge func(a, b T) T

	// Equal 是状态相等判定。
	Equal func(a, b T) bool

	// Bottom 是最小元素（通常为类型零值）。
	Bottom T

	// Trials 是每条定律的试验次数，0 表示默认 100。
	Trials int

	// Seed 是随机源种子，0 表示默认 1。
	Seed int64
}

func (cfg Config[T]) trials() int {
	if cfg.Trials <= 0 {
		return 100
	}
	return cfg.Trials
}

func (cfg Config[T]) rand() *rand.Rand {
	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Check 在子测试中逐条验证半格定律。
func Check[T any](t *testing.T, cfg Config[T]) {
	t.Helper()

	t.Run("Idempotent", func(t *testing.T) {
		r := cfg.rand()
		for i := 0; i < cfg.trials(); i++ {
			a := cfg.Gen(r)
			if m := cfg.Merge(a, a); !cfg.Equal(m, a) {
				t.Fatalf("幂等律不成立: merge(a, a) != a\n  a = %+v\n  merge(a, a) = %+v", a, m)
			}
		}
	})

	t.Run("Commutative", func(t *testing.T) {
		r := cfg.rand()
		for i := 0; i < cfg.trials(); i++ {
			a, b := cfg.Gen(r), cfg.Gen(r)
			ab, ba := cfg.Merge(a, b), cfg.Merge(b, a)
			if !cfg.Equal(ab, ba) {
				t.Fatalf("交换律不成立: merge(a, b) != merge(b, a)\n  a = %+v\n  b = %+v\n  merge(a, b) = %+v\n  merge(b, a) = %+v", a, b, ab, ba)
			}
		}
	})

	t.Run("Associative", func(t *testing.T) {
		r := cfg.rand()
		for i := 0; i < cfg.trials(); i++ {
			a, b, c := cfg.Gen(r), cfg.Gen(r), cfg.Gen(r)
			left := cfg.Merge(cfg.Merge(a, b), c)
			right := cfg.Merge(a, cfg.Merge(b, c))
			if !cfg.Equal(left, right) {
				t.Fatalf("结合律不成立: merge(merge(a, b), c) != merge(a, merge(b, c))\n  a = %+v\n  b = %+v\n  c = %+v", a, b, c)
			}
		}
	})

	t.Run("Identity", func(t *testing.T) {
		r := cfg.rand()
		for i := 0; i < cfg.trials(); i++ {
			a := cfg.Gen(r)
			if m := cfg.Merge(a, cfg.Bottom); !cfg.Equal(m, a) {
				t.Fatalf("单位元律不成立: merge(a, bottom) != a\n  a = %+v\n  merge(a, bottom) = %+v", a, m)
			}
			if m := cfg.Merge(cfg.Bottom, a); !cfg.Equal(m, a) {
				t.Fatalf("单位元律不成立: merge(bottom, a) != a\n  a = %+v\n  merge(bottom, a) = %+v", a, m)
			}
		}
	})

	if cfg.Mutate == nil {
		return
	}
	t.Run("Monotonic", func(t *testing.T) {
		r := cfg.rand()
		for i := 0; i < cfg.trials(); i++ {
			a := cfg.Gen(r)
			next := cfg.Mutate(r, a)
			// a ≤ next 当且仅当 merge(a, next) = next。
			if m := cfg.Merge(a, next); !cfg.Equal(m, next) {
				t.Fatalf("本地操作不单调: merge(a, a') != a'\n  a = %+v\n  a' = %+v\n  merge(a, a') = %+v", a, next, m)
			}
		}
	})
}
