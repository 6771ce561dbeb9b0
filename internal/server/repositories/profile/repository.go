// Package profile persists the single current portfolio document.
package profile

import (
	"context"

	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
)

// Repository stores profile rows. The system models exactly one profile, so
// reads never search by key: Current simply takes the row with the greatest
// identifier. Older rows, if any exist from the documented seed race, are
// never read again.
type Repository interface {
	// Current returns the most recent row, or common.ErrorNotFound when the
	// store is empty.
	Current(ctx context.Context) (*models.StoredProfile, error)

	// Insert stores a new row holding doc and returns its identifier.
	Insert(ctx context.Context, doc *models.Profile) (int64, error)

	// Save replaces the current document wholesale, inserting when the store
	// is empty, and returns the identifier of the row written. The row-id
	// read and the write are atomic.
	Save(ctx context.Context, doc *models.Profile) (int64, error)
}
