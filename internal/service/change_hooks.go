package service

import "context"

// changeHooks runs registered callbacks after a successful write
type changeHooks struct {
	onChange []func(context.Context)
}

// OnChange registers fn to run after every successful create, update or delete
func (h *changeHooks) OnChange(fn func(context.Context)) {
	h.onChange = append(h.onChange, fn)
}

func (h *changeHooks) changed(ctx context.Context) {
	for _, fn := range h.onChange {
		fn(ctx)
	}
}
