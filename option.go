package sidecut

type option[T any] struct {
	isSet bool
	value T
}

func (opt *option[T]) set(v T) {
	opt.isSet = true
	opt.value = v
}

func (opt option[T]) get() (T, bool) {
	return opt.value, opt.isSet
}
