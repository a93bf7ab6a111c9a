package movement

import "sync"

var ctxPool = sync.Pool{
	New: func() any {
		return &tickContext{}
	},
}

func newCtx(profile *Profile, state *State, dt float32, in Input, debugf func(string, ...any)) *tickContext {
	ctx := ctxPool.Get().(*tickContext)
	ctx.profile = profile
	ctx.state = state
	ctx.dt = dt
	ctx.in = in
	ctx.debugf = debugf
	return ctx
}

func putCtx(ctx *tickContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *tickContext) reset() {
	ctx.profile = nil
	ctx.state = nil
	ctx.dt = 0
	ctx.in = Input{}
	ctx.debugf = nil
	ctx.grounded = false
	ctx.result = Result{}
}
