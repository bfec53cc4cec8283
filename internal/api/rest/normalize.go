package rest

import "net/http"

// ResultKind tags the shape of a query outcome.
type ResultKind int

const (
	KindNotFound ResultKind = iota
	KindSingle
	KindMany
)

// Result is the shaped outcome of a data query: not found, a singleton
// object, or a list. The collapsing policy is decided once, where the
// result is built, never re-inferred from lengths at the write site.
type Result[T any] struct {
	Kind  ResultKind
	Item  T
	Items []T
}

// NotFound is the empty-result signal.
func NotFound[T any]() Result[T] {
	return Result[T]{Kind: KindNotFound}
}

// Single wraps a keyed-lookup hit.
func Single[T any](v T) Result[T] {
	return Result[T]{Kind: KindSingle, Item: v}
}

// Normalize shapes a result set per endpoint policy: zero rows is not
// found; exactly one row collapses to a singleton unless the endpoint
// forces list semantics; anything else is a list.
func Normalize[T any](rows []T, forceList bool) Result[T] {
	switch {
	case len(rows) == 0:
		return NotFound[T]()
	case len(rows) == 1 && !forceList:
		return Single(rows[0])
	default:
		return Result[T]{Kind: KindMany, Items: rows}
	}
}

// writeResult renders a Result: 404 with an empty body, a single JSON
// object, or a JSON array.
func writeResult[T any](w http.ResponseWriter, res Result[T]) {
	switch res.Kind {
	case KindNotFound:
		w.WriteHeader(http.StatusNotFound)
	case KindSingle:
		respondJSON(w, http.StatusOK, res.Item)
	default:
		respondJSON(w, http.StatusOK, res.Items)
	}
}
