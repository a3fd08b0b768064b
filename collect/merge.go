package collect

// FailOnDuplicate returns the default merge policy: a sentinel merge function
// that always fails with ErrDuplicateKey. Modeling fail-fast as a MergeFunc
// keeps the fail and custom-merge paths on one mechanism instead of a branch
// in the fold.
func FailOnDuplicate[V any]() MergeFunc[V] {
	return func(V, V) (V, error) {
		var zero V

		return zero, ErrDuplicateKey
	}
}

// KeepFirst returns a merge policy that keeps the value already present and
// discards later values for the same key.
func KeepFirst[V any]() MergeFunc[V] {
	return func(old, _ V) (V, error) {
		return old, nil
	}
}

// KeepLast returns a merge policy that replaces the value already present
// with the latest value for the same key.
func KeepLast[V any]() MergeFunc[V] {
	return func(_, next V) (V, error) {
		return next, nil
	}
}
