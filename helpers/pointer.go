package helpers

import "reflect"

// StrPanic panics with panicMessage if p is empty (no TrimSpace); otherwise returns p.
// Used by constructors for required strings such as an instance address or the metrics namespace.
func StrPanic(p string, panicMessage string) string {
	if p == "" {
		panic(panicMessage)
	}
	return p
}

// NilPanic panics with panicMessage if v is nil, including typed nil pointers, slices, maps,
// channels, funcs and interfaces; otherwise returns v unchanged.
//
// Parameters: v: dependency to check; panicMessage: panic value, conventionally "<pkg>.<file>: <dep> is required".
//
// Called from every constructor in service, adapters and handlers (NewDiscoveryService, NewClientCache,
// NewComparator, NewMetricsRecorder, adapters.NewSet, handlers.NewHTTPServer, ...).
func NilPanic[T any](v T, panicMessage string) T {
	if isNil(v) {
		panic(panicMessage)
	}
	return v
}

// isNil reports whether v is nil or wraps a nil pointer/slice/map/chan/func/interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
