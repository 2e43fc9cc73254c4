// Package export produces compressed dumps of the full profile collection.
package export

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"lavka/internal/domain/profile"
)

// Exporter serializes the current profile collection and compresses it
// with zstd. The encoder is created once and reused via EncodeAll.
type Exporter struct {
	profiles *profile.Service
	encoder  *zstd.Encoder
}

// New creates an Exporter.
func New(profiles *profile.Service) (*Exporter, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	return &Exporter{profiles: profiles, encoder: encoder}, nil
}

// Dump returns the zstd-compressed JSON of every profile.
func (e *Exporter) Dump(ctx context.Context) ([]byte, error) {
	collection := profile.Collection{}
	for _, name := range e.profiles.List(ctx) {
		p, err := e.profiles.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		collection[name] = p
	}

	data, err := json.Marshal(collection)
	if err != nil {
		return nil, fmt.Errorf("marshal collection: %w", err)
	}

	return e.encoder.EncodeAll(data, nil), nil
}
