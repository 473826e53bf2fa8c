package pokedata

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

// boolOr resolves a tri-state flag: nil means "not set, use the default".
func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
