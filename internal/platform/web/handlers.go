package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzhttp"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/vovakirdan/tetris-pwa/internal/games/tetris"
	"github.com/vovakirdan/tetris-pwa/internal/protocol"
	"github.com/vovakirdan/tetris-pwa/internal/sfx"
	"github.com/vovakirdan/tetris-pwa/internal/storage"
)

// Handler returns the full route table. Only static routes are compressed;
// the WebSocket upgrade needs the raw ResponseWriter.
func (s *Server) Handler() http.Handler {
	static := http.NewServeMux()
	static.HandleFunc("GET /{$}", s.serveBytes("text/html; charset=utf-8", s.assets.index, false))
	static.HandleFunc("GET /index.html", s.serveBytes("text/html; charset=utf-8", s.assets.index, false))
	static.HandleFunc("GET /style.css", s.serveBytes("text/css; charset=utf-8", s.assets.style, true))
	static.HandleFunc("GET /app.js", s.serveBytes("text/javascript; charset=utf-8", s.assets.script, true))
	static.HandleFunc("GET /sw.js", s.serveBytes("text/javascript; charset=utf-8", s.assets.worker, false))
	static.HandleFunc("GET /manifest.json", s.serveBytes("application/manifest+json", s.assets.manifest, true))
	static.HandleFunc("GET /favicon.ico", s.serveBytes("image/x-icon", s.assets.favicon, true))
	static.HandleFunc("GET /icons/{file}", s.handleIcon)
	static.HandleFunc("GET /sounds/{file}", s.handleSound)
	static.HandleFunc("GET /api/scores", s.handleScores)
	static.HandleFunc("GET /healthz", s.handleHealth)
	static.HandleFunc("GET /qr.png", s.handleQR)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.Handle("/", gzhttp.GzipHandler(static))
	return mux
}

// serveBytes serves an in-memory asset. Cacheable assets get a day of max-age;
// the page and the worker must always revalidate so updates roll out.
func (s *Server) serveBytes(contentType string, body []byte, cacheable bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=86400")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}
		_, _ = w.Write(body)
	}
}

func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	b, ok := s.assets.icons[r.PathValue("file")]
	if !ok {
		http.NotFound(w, r)
		return
	}
	s.serveBytes("image/png", b, true)(w, r)
}

func (s *Server) handleSound(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(r.PathValue("file"), ".wav")
	if !ok {
		http.NotFound(w, r)
		return
	}
	b, err := s.sounds.WAV(name)
	if errors.Is(err, sfx.ErrUnknownSound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("render sound", "name", name, "error", err)
		http.Error(w, "sound unavailable", http.StatusInternalServerError)
		return
	}
	s.serveBytes("audio/wav", b, true)(w, r)
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	if s.opts.Store == nil {
		writeJSON(w, http.StatusServiceUnavailable, protocol.NewError(protocol.ErrInternal, "scores are not stored"))
		return
	}
	q := r.URL.Query()
	mode := q.Get("mode")
	if mode == "" {
		mode = string(tetris.ModeMarathon)
	}
	limit := 10
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeJSON(w, http.StatusBadRequest, protocol.NewError(protocol.ErrBadRequest, "limit must be 1-100"))
			return
		}
		limit = n
	}

	scores, err := s.opts.Store.TopScoresFrom(mode, q.Get("source"), limit)
	if err != nil {
		s.logger.Error("load scores", "mode", mode, "error", err)
		writeJSON(w, http.StatusInternalServerError, protocol.NewError(protocol.ErrInternal, "could not load scores"))
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"mode": mode, "scores": scores})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"sessions": s.sessions.Count(),
		"version":  protocol.Version,
	})
}

// handleQR encodes the public URL so a phone can open the game.
func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	url := s.opts.PublicURL
	if url == "" {
		url = "http://" + r.Host + "/"
	}
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
