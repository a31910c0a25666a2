package services

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/etimsclient/internal/client/api"
	"github.com/dmitrijs2005/etimsclient/internal/client/models"
)

// decodeList accepts a bare JSON array, a paginated object ({"results": [...]})
// or a wrapped one ({"data": [...]}) and returns the items.
func decodeList[T any](env api.Envelope) ([]T, error) {
	if err := env.Err(); err != nil {
		return nil, err
	}
	if len(env.Data) == 0 {
		return nil, nil
	}

	normalized, err := api.NormalizeKeys(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrUnexpectedShape, err)
	}

	var items []T
	if err := json.Unmarshal(normalized, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Data    json.RawMessage `json:"data"`
		Results []T             `json:"results"`
	}
	if err := json.Unmarshal(normalized, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", api.ErrUnexpectedShape, err)
	}
	if wrapped.Results != nil {
		return wrapped.Results, nil
	}
	if len(wrapped.Data) > 0 {
		return decodeList[T](api.Envelope{Success: true, Data: wrapped.Data})
	}
	return nil, fmt.Errorf("%w: expected a list", api.ErrUnexpectedShape)
}

// decodePage accepts a paginated object or a bare array, which is turned
// into a single page.
func decodePage[T any](env api.Envelope) (models.Page[T], error) {
	page, err := api.Decode[models.Page[T]](env)
	if err == nil && (page.Results != nil || page.Count > 0) {
		return page, nil
	}
	items, lerr := decodeList[T](env)
	if lerr != nil {
		if err != nil {
			return models.Page[T]{}, err
		}
		return models.Page[T]{}, lerr
	}
	return models.Page[T]{Count: len(items), Results: items}, nil
}
