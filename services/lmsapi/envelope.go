package lmsapi

import (
	"bytes"
	"encoding/json"

	"github.com/pkg/errors"
)

// PagedResult is the single normalized list shape handed to page handlers.
// The backend answers list calls with three different envelopes depending on
// the endpoint: a bare array, {"data": [...]} and
// {"pagination": {"content": [...], "totalItems": n, "totalPages": n}}.
// Normalization happens here, once, so callers never branch on shape.
type PagedResult[T any] struct {
	Content    []T
	TotalItems int
	TotalPages int
}

func (p *PagedResult[T]) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*p = PagedResult[T]{}
		return nil
	}

	// bare array
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return err
		}
		*p = PagedResult[T]{Content: items, TotalItems: len(items), TotalPages: 1}
		return nil
	}

	var env struct {
		Data       []T `json:"data"`
		Pagination *struct {
			Content    []T `json:"content"`
			TotalItems int `json:"totalItems"`
			TotalPages int `json:"totalPages"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Wrap(err, "unexpected list envelope")
	}

	if env.Pagination != nil {
		*p = PagedResult[T]{
			Content:    env.Pagination.Content,
			TotalItems: env.Pagination.TotalItems,
			TotalPages: env.Pagination.TotalPages,
		}
		if p.Content == nil {
			p.Content = []T{}
		}
		return nil
	}

	items := env.Data
	if items == nil {
		items = []T{}
	}
	*p = PagedResult[T]{Content: items, TotalItems: len(items), TotalPages: 1}
	return nil
}

// unwrap decodes a single-object response that may arrive bare or under a
// `data` key. Lists pass straight through to PagedResult's unmarshaler.
func unwrap(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil
	}
	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	if _, ok := out.(interface{ pagedResult() }); ok {
		return json.Unmarshal(trimmed, out)
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err == nil &&
		len(bytes.TrimSpace(env.Data)) > 0 && !bytes.Equal(bytes.TrimSpace(env.Data), []byte("null")) {
		// {"data": {...}} wrapper, unless the target expects a data list itself
		if d := bytes.TrimSpace(env.Data); d[0] == '{' {
			return json.Unmarshal(d, out)
		}
	}
	return json.Unmarshal(trimmed, out)
}

// pagedResult marks PagedResult so unwrap leaves envelope handling to it.
func (p *PagedResult[T]) pagedResult() {}
