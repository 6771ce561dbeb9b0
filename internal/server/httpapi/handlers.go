// Package httpapi is the JSON-over-HTTP boundary of the portfolio service:
// one public read endpoint and two admin-gated write endpoints.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/bibe1s/JRSolisPortfolio/internal/common"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/models"
	"github.com/bibe1s/JRSolisPortfolio/internal/server/services"
)

// LoadProfile serves the current document without authentication. Reads
// favor availability over correctness: any internal fault degrades to the
// hard-coded default document with 200, never a 5xx.
func (s *Server) LoadProfile(w http.ResponseWriter, r *http.Request) {
	doc, err := s.profiles.Load(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "load failed, serving default document",
			"request_id", requestID(r.Context()), "error", err.Error())
		writeJSON(w, http.StatusOK, models.DefaultProfile())
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// SaveProfile replaces the stored document with the request body. The body
// must be a complete document; partial edits are merged by the editing
// surface before the request is sent.
func (s *Server) SaveProfile(w http.ResponseWriter, r *http.Request) {
	doc := &models.Profile{}
	if err := json.NewDecoder(r.Body).Decode(doc); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid profile document")
		return
	}

	if err := s.profiles.Save(r.Context(), doc); err != nil {
		s.logger.Error(r.Context(), "save failed",
			"request_id", requestID(r.Context()), "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	s.logger.Info(r.Context(), "document replaced",
		"request_id", requestID(r.Context()), "principal", principalEmail(r.Context()))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Profile saved successfully",
	})
}

// maxUploadBody caps the whole request body. The slack above the file limit
// covers multipart boundaries and part headers, so a file just over the
// limit still parses and reaches the pipeline's own size check; anything
// blowing past the slack trips the reader and is reported as oversize here.
const maxUploadBody = services.MaxUploadBytes + 1<<20

// UploadMedia accepts a multipart form with the binary under the "image"
// field, runs it through the ingestion pipeline, and returns the resulting
// media reference.
func (s *Server) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBody)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	ref, err := s.media.Ingest(r.Context(), services.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Data:        data,
	})
	if err != nil {
		s.respondIngestError(w, r, err)
		return
	}

	s.logger.Info(r.Context(), "media stored",
		"request_id", requestID(r.Context()), "principal", principalEmail(r.Context()),
		"public_id", ref.PublicID)

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"imageUrl": ref.URL,
		"publicId": ref.PublicID,
		"fileName": ref.FileName,
		"fileSize": ref.FileSize,
		"width":    ref.Width,
		"height":   ref.Height,
	})
}

// respondIngestError maps pipeline sentinels to the descriptive 400s the
// editing UI relies on; anything else is an upstream failure surfaced as 500
// with the upstream's message attached.
func (s *Server) respondIngestError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorNoFile):
		writeError(w, http.StatusBadRequest, "No image file provided")
	case errors.Is(err, common.ErrorUnsupportedType):
		writeError(w, http.StatusBadRequest, "Invalid file type. Only JPEG, PNG, GIF, and WebP are allowed.")
	case errors.Is(err, common.ErrorFileTooLarge):
		writeError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB.")
	default:
		s.logger.Error(r.Context(), "upload failed",
			"request_id", requestID(r.Context()), "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to upload image",
			"details": err.Error(),
		})
	}
}
