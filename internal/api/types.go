package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Page mirrors the backend's paginated envelope (Spring-style "content"
// array with paging metadata).
type Page[T any] struct {
	Items         []T
	Number        int
	Size          int
	TotalElements int64
	TotalPages    int
}

// decodeList accepts the documented list shapes: a bare JSON array,
// {"data": [...]}, or a paginated {"content": [...]} wrapper. Anything
// else is rejected rather than silently treated as empty.
func decodeList[T any](data []byte) ([]T, error) {
	trim := bytes.TrimSpace(data)
	if len(trim) == 0 {
		return nil, errors.New("api: empty list response")
	}
	if trim[0] == '[' {
		var out []T
		if err := json.Unmarshal(trim, &out); err != nil {
			return nil, fmt.Errorf("api: decode list: %w", err)
		}
		return out, nil
	}

	var env struct {
		Data    json.RawMessage `json:"data"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(trim, &env); err != nil {
		return nil, fmt.Errorf("api: decode list: %w", err)
	}
	raw := env.Data
	if raw == nil {
		raw = env.Content
	}
	if raw == nil {
		return nil, errors.New("api: unrecognized list shape")
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("api: decode list: %w", err)
	}
	return out, nil
}

// decodePage decodes a paginated response. The items may arrive under
// "content" (Spring) or "data"; any other shape is rejected.
func decodePage[T any](data []byte) (*Page[T], error) {
	var env struct {
		Content       json.RawMessage `json:"content"`
		Data          json.RawMessage `json:"data"`
		Number        int             `json:"number"`
		Size          int             `json:"size"`
		TotalElements int64           `json:"totalElements"`
		TotalPages    int             `json:"totalPages"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("api: decode page: %w", err)
	}
	raw := env.Content
	if raw == nil {
		raw = env.Data
	}
	if raw == nil {
		return nil, errors.New("api: unrecognized page shape")
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("api: decode page items: %w", err)
	}
	return &Page[T]{
		Items:         items,
		Number:        env.Number,
		Size:          env.Size,
		TotalElements: env.TotalElements,
		TotalPages:    env.TotalPages,
	}, nil
}
