package models

// MediaReference is the immutable result of a successful upload. Documents
// reference it by value (the URL string); there is no foreign key back to the
// media host and superseded assets are never reclaimed here.
type MediaReference struct {
	URL      string `json:"imageUrl"`
	PublicID string `json:"publicId"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
}
