package messenger

import "weak"

// Reference 委托引用
//
// Resolve 返回可调用对象；false 表示目标已被回收。Resolve 不会 panic。
type Reference[F any] interface {
	Resolve() (F, bool)
}

// ============================================================================
// 强引用
// ============================================================================

type strongReference[F any] struct {
	fn F
}

// Strong 创建强引用，只要引用本身存活就能解析
func Strong[F any](fn F) Reference[F] {
	return strongReference[F]{fn: fn}
}

func (r strongReference[F]) Resolve() (F, bool) {
	return r.fn, true
}

// ============================================================================
// 弱引用
// ============================================================================

type weakReference[O, F any] struct {
	target weak.Pointer[O]
	bind   func(*O) F
}

// Weak 创建弱引用
//
// 只保存 owner 的弱指针；bind 在每次解析时由存活的 owner 重建可调用对象。
// bind 不得捕获 owner 本身。
func Weak[O, F any](owner *O, bind func(*O) F) Reference[F] {
	return &weakReference[O, F]{
		target: weak.Make(owner),
		bind:   bind,
	}
}

func (r *weakReference[O, F]) Resolve() (F, bool) {
	owner := r.target.Value()
	if owner == nil {
		var zero F
		return zero, false
	}
	return r.bind(owner), true
}

// Alive 引用是否仍可解析
func Alive[F any](ref Reference[F]) bool {
	_, ok := ref.Resolve()
	return ok
}
