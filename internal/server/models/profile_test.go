package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProfile_CoversBothPersonas(t *testing.T) {
	p := DefaultProfile()

	assert.NotEmpty(t, p.Web2.Personal.Name)
	assert.NotEmpty(t, p.Web3.Personal.Name)
	assert.NotEmpty(t, p.Web2.Sections)
	assert.NotEmpty(t, p.Web3.Sections)
}

func TestDefaultProfile_FreshValuePerCall(t *testing.T) {
	a := DefaultProfile()
	b := DefaultProfile()

	a.Web2.Personal.Name = "mutated"
	assert.NotEqual(t, a.Web2.Personal.Name, b.Web2.Personal.Name)
}

func TestProfile_JSONRoundTrip(t *testing.T) {
	img := "https://cdn.example.com/portfolio/abc.jpg"
	p := DefaultProfile()
	p.Web2.Personal.Image = &img
	p.Web2.Sections[0].Blocks = append(p.Web2.Sections[0].Blocks, ContentBlock{
		Type:   BlockText,
		Images: ImageList{"a.jpg", "b.jpg"},
	})

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got Profile
	require.NoError(t, json.Unmarshal(raw, &got))
	require.NotNil(t, got.Web2.Personal.Image)
	assert.Equal(t, img, *got.Web2.Personal.Image)
	assert.Equal(t, p.Web2.Sections[0].Blocks, got.Web2.Sections[0].Blocks)
}
