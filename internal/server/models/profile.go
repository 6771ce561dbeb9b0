// Package models defines the portfolio profile document, its content blocks
// and the media reference returned by the upload pipeline.
package models

import "time"

// BorderStyle selects the decorative frame drawn around the personal card.
type BorderStyle string

const (
	BorderNone     BorderStyle = "none"
	BorderSolid    BorderStyle = "solid"
	BorderGradient BorderStyle = "gradient"
	BorderGlow     BorderStyle = "glow"
)

// Profile is the full portfolio state. Both personas share one schema and the
// document always resolves to a value for both.
type Profile struct {
	Web2 Persona `json:"web2"`
	Web3 Persona `json:"web3"`
}

// Persona is one of the two named variants of the profile document.
type Persona struct {
	Personal PersonalInfo `json:"personal"`
	Sections []Section    `json:"sections"`
}

// PersonalInfo holds the identity card of a persona. Image is the delivery
// URL of an uploaded media asset, nil when no photo is set.
type PersonalInfo struct {
	Name                 string      `json:"name"`
	Title                string      `json:"title"`
	Email                string      `json:"email"`
	ShowEmail            bool        `json:"showEmail"`
	Phone                string      `json:"phone"`
	ShowPhone            bool        `json:"showPhone"`
	Image                *string     `json:"image"`
	Enable3DHover        bool        `json:"enable3DHover"`
	EnableAnimatedBorder bool        `json:"enableAnimatedBorder"`
	BorderStyle          BorderStyle `json:"borderStyle"`
}

// Section groups content blocks under one heading. EnableGlassEffect is the
// fallback for blocks that do not set their own toggle.
type Section struct {
	Title             string         `json:"title"`
	EnableGlassEffect bool           `json:"enableGlassEffect"`
	Blocks            []ContentBlock `json:"blocks"`
}

// StoredProfile is the persisted row wrapping a profile document: the row
// with the greatest ID is the current document.
type StoredProfile struct {
	ID        int64
	Document  *Profile
	UpdatedAt time.Time
}
