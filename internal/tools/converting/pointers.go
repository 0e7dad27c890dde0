package converting

// Unwrap returns the zero value of the type for nil pointers.
func Unwrap[T any](x *T) (r T) {
	if x != nil {
		r = *x
	}

	return
}
