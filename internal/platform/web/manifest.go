package web

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tetris-pwa/internal/icons"
	"github.com/vovakirdan/tetris-pwa/internal/protocol"
)

// Manifest is the web app manifest.
type Manifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	Orientation     string         `json:"orientation"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Icons           []ManifestIcon `json:"icons"`
}

type ManifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

const themeColor = "#0f0f23"

// DefaultManifest describes the installed app.
func DefaultManifest() Manifest {
	m := Manifest{
		Name:            "Tetris",
		ShortName:       "Tetris",
		Description:     "Classic falling blocks, installable to the home screen. Games run on the server.",
		StartURL:        ".",
		Display:         "standalone",
		Orientation:     "portrait",
		BackgroundColor: themeColor,
		ThemeColor:      themeColor,
	}
	for _, size := range icons.DefaultSizes {
		m.Icons = append(m.Icons, ManifestIcon{
			Src:     "icons/" + icons.FileName(size),
			Sizes:   fmt.Sprintf("%dx%d", size, size),
			Type:    "image/png",
			Purpose: "any maskable",
		})
	}
	return m
}

// encodeManifest marshals m and checks it against the manifest schema.
func encodeManifest(m Manifest) ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("web: encode manifest: %w", err)
	}
	if err := protocol.Validate(protocol.SchemaManifest, b); err != nil {
		return nil, fmt.Errorf("web: manifest: %w", err)
	}
	return b, nil
}
