package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"time"
)

// Store persists the whole catalog as one ordered list of bundles.
//
// Read returns an empty list, not an error, when nothing was persisted yet,
// and creates the empty document as a side effect.
type Store interface {
	Read(ctx context.Context) ([]Bundle, error)
	Write(ctx context.Context, bundles []Bundle) error
}

const jsonIndent = "  "

func encodeBundles(bundles []Bundle) ([]byte, error) {
	if bundles == nil {
		bundles = []Bundle{}
	}
	data, err := json.MarshalIndent(bundles, "", jsonIndent)
	if err != nil {
		return nil, &StoreError{Op: "encode", Err: err}
	}
	return data, nil
}

func decodeBundles(data []byte) ([]Bundle, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []Bundle{}, nil
	}

	var out []Bundle
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &StoreError{Op: "decode", Err: err}
	}
	if out == nil {
		out = []Bundle{}
	}
	return out, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
