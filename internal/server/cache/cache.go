// Package cache holds the optional read-path cache of the current profile
// document. The store stays authoritative: cache failures degrade to a
// database read and are never surfaced to callers.
package cache

import (
	"context"

	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
)

// ProfileCache caches the one current document. Get returns (nil, nil) on a
// miss.
type ProfileCache interface {
	Get(ctx context.Context) (*models.Profile, error)
	Set(ctx context.Context, doc *models.Profile) error
}
