package service

import "errors"

// ErrStalePass is returned by ClientCache.Refresh and Comparator.Apply when a newer pass started
// before this one finished. The stale pass leaves the cache and the published snapshot untouched.
var ErrStalePass = errors.New("resolution pass superseded")

// ErrNoClient is reported for an active slot that has no client handle: the engine cannot honour
// the current shaping (sort N/A) or its construction failed.
var ErrNoClient = errors.New("no client for slot")

// ErrNoQueryableFields is logged when schema introspection returns no string fields for a collection.
var ErrNoQueryableFields = errors.New("no queryable fields")

// ErrUnknownCollection is returned when a selection names a collection absent from the collection index.
var ErrUnknownCollection = errors.New("unknown collection")
