// Package storage uploads rendered images to object storage.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rozeen-shrestha/confession/config"
)

// ObjectStore puts an object and returns the URL it is publicly served from.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// New builds the store selected by cfg.Driver. It returns nil, nil when no
// driver is configured.
func New(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	switch cfg.Driver {
	case "":
		return nil, nil
	case "r2":
		r2, err := NewR2(ctx, R2Options{
			Bucket:       cfg.R2Bucket,
			AccessKey:    cfg.R2AccessKeyID,
			SecretKey:    cfg.R2SecretAccessKey,
			Endpoint:     cfg.R2Endpoint,
			PublicDomain: cfg.R2PublicDomain,
		})
		if err != nil {
			return nil, err
		}
		return r2, nil
	case "gcs":
		g, err := NewGCS(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// ConfessionImageKey names the object for a rendered confession card.
func ConfessionImageKey(confessionID string, now time.Time) string {
	return fmt.Sprintf("confessions/%s/%d-%s.png", confessionID, now.UTC().Unix(), uuid.New().String())
}
