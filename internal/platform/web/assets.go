package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/vovakirdan/tetris-pwa/internal/controls"
	"github.com/vovakirdan/tetris-pwa/internal/icons"
)

//go:embed assets/*
var assetFS embed.FS

// pageData feeds index.html.
type pageData struct {
	Title      string
	ThemeColor string
	Controls   []controls.TouchControl
	StartID    string
	TapMaxPx   int
	SwipeMinPx int
}

// assets is everything served from memory, rendered once at startup.
type assets struct {
	index    []byte
	style    []byte
	script   []byte
	worker   []byte
	manifest []byte
	icons    map[string][]byte // by file name
	favicon  []byte
}

func buildAssets() (*assets, error) {
	a := &assets{icons: make(map[string][]byte)}

	tmplSrc, err := assetFS.ReadFile("assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("web: read index: %w", err)
	}
	tmpl, err := template.New("index").Funcs(template.FuncMap{
		"lower": strings.ToLower,
	}).Parse(string(tmplSrc))
	if err != nil {
		return nil, fmt.Errorf("web: parse index: %w", err)
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, pageData{
		Title:      "Tetris",
		ThemeColor: themeColor,
		Controls:   controls.TouchControls,
		StartID:    controls.ButtonStart,
		TapMaxPx:   controls.TapMaxPx,
		SwipeMinPx: controls.SwipeMinPx,
	})
	if err != nil {
		return nil, fmt.Errorf("web: render index: %w", err)
	}
	a.index = buf.Bytes()

	for name, dst := range map[string]*[]byte{
		"assets/style.css": &a.style,
		"assets/app.js":    &a.script,
		"assets/sw.js":     &a.worker,
	} {
		b, err := assetFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("web: read %s: %w", name, err)
		}
		*dst = b
	}

	if a.manifest, err = encodeManifest(DefaultManifest()); err != nil {
		return nil, err
	}

	for _, size := range icons.DefaultSizes {
		b, err := icons.EncodePNG(size)
		if err != nil {
			return nil, err
		}
		a.icons[icons.FileName(size)] = b
	}
	if a.favicon, err = icons.Favicon(); err != nil {
		return nil, err
	}
	return a, nil
}
