// Package loader reads raw posting datasets from JSON files.
//
// The dataset shape is not ours to dictate: exports wrap the record list in
// different containers or hand us a bare array. Anything that cannot be
// understood degrades to an empty dataset; loading never fails the caller.
package loader

import (
	"context"
	"encoding/json"
	"os"

	"github.com/okian/joblens/internal/domain/record"
	"github.com/okian/joblens/pkg/logger"
)

// wrapperKeys are tried in order when the top level is an object.
var wrapperKeys = []string{"records", "data", "jobs", "rows"}

// Load reads the JSON file at path and extracts raw posting records.
// Unreadable files, invalid JSON, and unknown containers all degrade to an
// empty dataset with a warning log.
func Load(ctx context.Context, path string) []record.Raw {
	log := logger.Get().Named("loader")

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(ctx, "dataset file unreadable; starting empty",
			logger.String("path", path), logger.Error(err))
		return nil
	}

	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Warn(ctx, "dataset file is not valid JSON; starting empty",
			logger.String("path", path), logger.Error(err))
		return nil
	}

	raws := FromAny(payload)
	if raws == nil {
		log.Warn(ctx, "dataset has no recognizable record list; starting empty",
			logger.String("path", path))
	}
	return raws
}

// FromAny extracts raw records from an already-decoded JSON value. Accepted
// shapes: a top-level array of objects, or an object wrapping such an array
// under one of the known keys. Non-object elements are skipped.
func FromAny(payload any) []record.Raw {
	switch v := payload.(type) {
	case []any:
		return fromList(v)
	case map[string]any:
		for _, key := range wrapperKeys {
			if inner, ok := v[key].([]any); ok {
				return fromList(inner)
			}
		}
	}
	return nil
}

func fromList(list []any) []record.Raw {
	out := make([]record.Raw, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, record.Raw(obj))
		}
	}
	return out
}
