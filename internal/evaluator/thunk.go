package evaluator

// Thunk is a memoizing deferred computation. Force evaluates the
// wrapped computation at most once on success; a failed computation is
// not cached, so a later Force re-attempts it. Thunks are shared
// freely by scopes, arrays and object members under the single
// evaluation thread assumption.
type Thunk struct {
	compute func() (Value, error)
	value   Value
}

// NewThunk wraps a computation for on-demand evaluation.
func NewThunk(compute func() (Value, error)) *Thunk {
	return &Thunk{compute: compute}
}

// ForcedThunk wraps an already-computed value.
func ForcedThunk(v Value) *Thunk {
	return &Thunk{value: v}
}

// Force returns the memoized result, running the computation only the
// first time.
func (t *Thunk) Force() (Value, error) {
	if t.value != nil {
		return t.value, nil
	}
	v, err := t.compute()
	if err != nil {
		return nil, err
	}
	t.value = v
	t.compute = nil
	return v, nil
}

// Forced reports whether the thunk has already been evaluated.
func (t *Thunk) Forced() bool { return t.value != nil }
