package fieldsync

// GetProbe returns a typed reader when the target can get the field.
type GetProbe[T any] func(Target) (func() T, bool)

// SetProbe returns a typed writer when the target can set the field.
type SetProbe[T any] func(Target) (func(T), bool)

// Getter builds a probe from a method expression on capability interface C.
func Getter[C any, T any](get func(C) T) GetProbe[T] {
	return func(t Target) (func() T, bool) {
		c, ok := t.(C)
		if !ok {
			return nil, false
		}
		return func() T { return get(c) }, true
	}
}

// Setter builds a probe from a method expression on capability interface C.
func Setter[C any, T any](set func(C, T)) SetProbe[T] {
	return func(t Target) (func(T), bool) {
		c, ok := t.(C)
		if !ok {
			return nil, false
		}
		return func(v T) { set(c, v) }, true
	}
}

// FieldDescriptor declares one synchronized field. Field is the only implementation.
type FieldDescriptor interface {
	FieldName() string
	InitialValue() any

	canGet(Target) bool
	canSet(Target) bool
	read(Target) (any, bool)
	write(Target, any) bool
	accepts(any) bool
	equal(a, b any) bool
}

// Field declares a synchronized field of type T. A nil probe means no target
// can provide that direction.
type Field[T comparable] struct {
	Name    string
	Initial T
	Get     GetProbe[T]
	Set     SetProbe[T]
}

var _ FieldDescriptor = Field[int]{}

// FieldName returns the field name.
func (f Field[T]) FieldName() string {
	return f.Name
}

// InitialValue returns the value the field starts with.
func (f Field[T]) InitialValue() any {
	return f.Initial
}

func (f Field[T]) canGet(t Target) bool {
	if f.Get == nil || t == nil {
		return false
	}
	_, ok := f.Get(t)
	return ok
}

func (f Field[T]) canSet(t Target) bool {
	if f.Set == nil || t == nil {
		return false
	}
	_, ok := f.Set(t)
	return ok
}

func (f Field[T]) read(t Target) (any, bool) {
	if f.Get == nil {
		return nil, false
	}
	get, ok := f.Get(t)
	if !ok {
		return nil, false
	}
	return get(), true
}

func (f Field[T]) write(t Target, v any) bool {
	typed, ok := v.(T)
	if !ok || f.Set == nil {
		return false
	}
	set, ok := f.Set(t)
	if !ok {
		return false
	}
	set(typed)
	return true
}

func (f Field[T]) accepts(v any) bool {
	_, ok := v.(T)
	return ok
}

func (f Field[T]) equal(a, b any) bool {
	x, ok := a.(T)
	if !ok {
		return false
	}
	y, ok := b.(T)
	if !ok {
		return false
	}
	return x == y
}
