package services

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
	"github.com/bibe1s/JRSolisPortfolio/internal/imagex"
	"github.com/bibe1s/JRSolisPortfolio/internal/logging"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/mediahost"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
)

// MaxUploadBytes is the server-boundary ceiling on an uploaded file. The
// editing surface enforces a stricter 5 MiB before the request is even sent;
// that limit is a UX concern and lives with the client.
const MaxUploadBytes = 10 << 20

// MediaNamespace is the fixed logical folder all portfolio assets are stored
// under at the media host.
const MediaNamespace = "portfolio"

// allowedTypes is the upload allow-list. Anything else is rejected before
// any network call.
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is one untrusted file as received at the boundary. Size is the
// client-declared byte size; Data holds the actual bytes.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Data        []byte
}

// MediaService validates uploads and converts them into durable,
// content-addressed references on the remote host.
type MediaService struct {
	host   mediahost.Host
	logger logging.Logger
}

func NewMediaService(host mediahost.Host, l logging.Logger) *MediaService {
	return &MediaService{host: host, logger: l.With("module", "media_service")}
}

// Ingest runs the validation chain, probes the image dimensions, and streams
// the binary to the media host. Each precondition fails with its own
// sentinel so the transport layer can report the specific reason. The result
// carries the host's canonical delivery URL; the bytes never round-trip
// through the document store.
func (s *MediaService) Ingest(ctx context.Context, up Upload) (*models.MediaReference, error) {
	if len(up.Data) == 0 {
		return nil, common.ErrorNoFile
	}

	ext, ok := allowedTypes[up.ContentType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrorUnsupportedType, up.ContentType)
	}

	if up.Size > MaxUploadBytes || int64(len(up.Data)) > MaxUploadBytes {
		return nil, common.ErrorFileTooLarge
	}

	width, height, err := imagex.Dimensions(bytes.NewReader(up.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: undecodable image: %v", common.ErrorUnsupportedType, err)
	}

	key := s.storageKey(up.Data, ext)
	res, err := s.host.Store(ctx, mediahost.Object{
		Key:         key,
		ContentType: up.ContentType,
		Body:        up.Data,
	})
	if err != nil {
		// surfaced with the upstream message attached; the caller decides
		// whether to retry
		return nil, fmt.Errorf("ingest %q: %w", up.FileName, err)
	}

	s.logger.Info(ctx, "media ingested",
		"public_id", res.PublicID, "bytes", up.Size, "width", width, "height", height)

	return &models.MediaReference{
		URL:      res.URL,
		PublicID: res.PublicID,
		FileName: up.FileName,
		FileSize: up.Size,
		Width:    width,
		Height:   height,
	}, nil
}

// storageKey addresses the object by content so identical uploads land on
// the same key.
func (s *MediaService) storageKey(data []byte, ext string) string {
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s/%s%s", MediaNamespace, hex.EncodeToString(sum[:]), ext)
}
