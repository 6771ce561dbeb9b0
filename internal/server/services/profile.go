// Package services contains server-side business logic: loading/saving the
// profile document and the media ingestion pipeline.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
	"github.com/bibe1s/JRSolisPortfolio/internal/logging"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/cache"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/repositories/profile"
)

// ProfileService owns the single current document: reads seed a default on
// an empty store, writes replace the document wholesale (last write wins, no
// conflict detection).
type ProfileService struct {
	repo   profile.Repository
	cache  cache.ProfileCache
	logger logging.Logger
}

// NewProfileService constructs the service. cache may be nil to disable the
// read-path cache.
func NewProfileService(repo profile.Repository, c cache.ProfileCache, l logging.Logger) *ProfileService {
	return &ProfileService{
		repo:   repo,
		cache:  c,
		logger: l.With("module", "profile_service"),
	}
}

// Load returns the current document. On the first ever read of an empty
// store it persists and returns the hard-coded default, so subsequent reads
// are consistent without re-deriving it. Two concurrent empty reads may both
// insert a default row; later reads take the greatest id, so the duplicate
// is never observed again.
func (s *ProfileService) Load(ctx context.Context) (*models.Profile, error) {
	if s.cache != nil {
		if doc, err := s.cache.Get(ctx); err != nil {
			s.logger.Warn(ctx, "cache read failed, falling back to store", "error", err.Error())
		} else if doc != nil {
			return doc, nil
		}
	}

	row, err := s.repo.Current(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		doc := models.DefaultProfile()
		if _, err := s.repo.Insert(ctx, doc); err != nil {
			return nil, fmt.Errorf("seed default document: %w", err)
		}
		s.logger.Info(ctx, "seeded default document on empty store")
		s.fillCache(ctx, doc)
		return doc, nil
	}
	if err != nil {
		return nil, err
	}

	s.fillCache(ctx, row.Document)
	return row.Document, nil
}

// Save replaces the current document with doc. The repository updates the
// most recent row in place atomically, inserting only when the store is
// empty. There is no merge and no conflict signal: of two concurrent saves,
// whichever commits last wins.
func (s *ProfileService) Save(ctx context.Context, doc *models.Profile) error {
	id, err := s.repo.Save(ctx, doc)
	if err != nil {
		return err
	}

	s.logger.Info(ctx, "profile saved", "row_id", id)
	s.fillCache(ctx, doc)
	return nil
}

// fillCache writes through best-effort; the store already holds the truth.
func (s *ProfileService) fillCache(ctx context.Context, doc *models.Profile) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, doc); err != nil {
		s.logger.Warn(ctx, "cache write failed", "error", err.Error())
	}
}
