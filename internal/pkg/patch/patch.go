// Package patch holds helpers for applying partial updates where a nil
// pointer means "leave unchanged".
package patch

func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Clone copies the pointee so the result never aliases ptr.
func Clone[T any](ptr *T) *T {
	if ptr == nil {
		return nil
	}
	v := *ptr
	return &v
}
