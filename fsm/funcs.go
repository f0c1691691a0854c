package fsm

// Funcs adapts plain functions into a State. Nil hooks are skipped.
type Funcs[T any] struct {
	ID       string
	OnEnter  func(T)
	OnExit   func(T)
	OnInvoke func(T)
}

func (f Funcs[T]) Name() string { return f.ID }

func (f Funcs[T]) Enter(owner T) {
	if f.OnEnter != nil {
		f.OnEnter(owner)
	}
}

func (f Funcs[T]) Exit(owner T) {
	if f.OnExit != nil {
		f.OnExit(owner)
	}
}

func (f Funcs[T]) Invoke(owner T) {
	if f.OnInvoke != nil {
		f.OnInvoke(owner)
	}
}
