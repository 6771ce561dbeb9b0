package models

import "encoding/json"

// Block types currently rendered by the editing surface. Unknown values are
// preserved as-is so future kinds round-trip through the store.
const (
	BlockTitle = "title"
	BlockText  = "text"
)

// ContentBlock is one renderable unit of a section. Image data arrives in two
// historical shapes under the same JSON field: a bare string (one image) or
// an ordered array. ImageList normalizes both to the array shape, so consumers
// never branch on which shape was stored.
type ContentBlock struct {
	Type              string    `json:"type"`
	Content           string    `json:"content,omitempty"`
	Duration          string    `json:"duration,omitempty"`
	EnableGlassEffect *bool     `json:"enableGlassEffect,omitempty"`
	Images            ImageList `json:"image,omitempty"`
	ImageLinks        ImageList `json:"imageLink,omitempty"`
}

// GlassEffect resolves the effective glass toggle for the block. An explicit
// block-level value (true or false) wins; an absent one falls back to the
// enclosing section's setting.
func (b *ContentBlock) GlassEffect(sectionDefault bool) bool {
	if b.EnableGlassEffect != nil {
		return *b.EnableGlassEffect
	}
	return sectionDefault
}

// LinkFor returns the link applying to the image at index i, or "" when the
// link list has no entry at that position.
func (b *ContentBlock) LinkFor(i int) string {
	if i < 0 || i >= len(b.ImageLinks) {
		return ""
	}
	return b.ImageLinks[i]
}

// ImageList is an ordered list of URLs that accepts both the legacy
// single-string JSON shape and the current array shape. A legacy value is
// equivalent to a one-element list; JSON null and "" normalize to an empty
// list. It always marshals as an array.
type ImageList []string

func (l *ImageList) UnmarshalJSON(b []byte) error {
	// current shape
	var many []string
	if err := json.Unmarshal(b, &many); err == nil {
		*l = many
		return nil
	}

	// legacy shape
	var one *string
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == nil || *one == "" {
		*l = nil
		return nil
	}
	*l = ImageList{*one}
	return nil
}

func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Carousel tracks which image of a block is currently displayed. The state is
// per-viewing-session only and never persisted. Both directions wrap
// circularly; a carousel over an empty list stays at index 0 and renders
// nothing.
type Carousel struct {
	size  int
	index int
}

// NewCarousel returns a carousel over n images, positioned at the first one.
func NewCarousel(n int) *Carousel {
	if n < 0 {
		n = 0
	}
	return &Carousel{size: n}
}

// Empty reports whether there is nothing to display.
func (c *Carousel) Empty() bool { return c.size == 0 }

// Index returns the currently displayed position.
func (c *Carousel) Index() int { return c.index }

// Next advances to the following image, wrapping to the first after the last.
func (c *Carousel) Next() int {
	if c.size == 0 {
		return 0
	}
	c.index = (c.index + 1) % c.size
	return c.index
}

// Prev steps back to the preceding image, wrapping to the last from the first.
func (c *Carousel) Prev() int {
	if c.size == 0 {
		return 0
	}
	c.index = (c.index - 1 + c.size) % c.size
	return c.index
}
