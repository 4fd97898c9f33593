package api

import (
	"bytes"
	"encoding/json"

	"github.com/MasCreaThor/plataforma/internal/logger"
)

// Decode unwraps a successful response body into out.
//
// The backend's envelope shape has been inconsistent across endpoints and
// versions, so the fallback order is fixed and explicit:
//
//  1. {"data": {"data": T}}  -> T
//  2. {"data": T}            -> T
//  3. an object whose single array-valued property is T -> T
//  4. the body itself decodes as T
//
// New code paths must go through this parser rather than guessing at the
// shape themselves.
func Decode(body []byte, out any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var env map[string]json.RawMessage
	if err := json.Unmarshal(body, &env); err != nil {
		// Not an object (bare array, scalar): rule 4.
		return json.Unmarshal(body, out)
	}

	if data, ok := env["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err == nil {
			if nested, ok := inner["data"]; ok {
				return json.Unmarshal(nested, out) // rule 1
			}
		}
		return json.Unmarshal(data, out) // rule 2
	}

	if arr, ok := singleArrayProperty(env); ok {
		return json.Unmarshal(arr, out) // rule 3
	}

	return json.Unmarshal(body, out) // rule 4
}

// singleArrayProperty returns the value of the only array-valued property
// of env, if there is exactly one.
func singleArrayProperty(env map[string]json.RawMessage) (json.RawMessage, bool) {
	var found json.RawMessage
	count := 0
	for _, raw := range env {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '[' {
			found = raw
			count++
		}
	}
	if count == 1 {
		return found, true
	}
	return nil, false
}

// DecodeList decodes a list payload, falling back to an empty slice when
// the success body has an unrecognized shape. This leniency applies only
// to malformed successes: transport and HTTP failures never reach here.
func DecodeList[T any](log logger.Logger, path string, body []byte) []T {
	var items []T
	if err := Decode(body, &items); err != nil {
		log.Warn("unrecognized list response shape, treating as empty",
			logger.String("path", path),
			logger.Error(err))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}
