package api

import (
	_ "embed"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jaym/spritegen/cues"
	"github.com/jaym/spritegen/metadata"
	"github.com/jaym/spritegen/objstore"
)

//go:embed demo.html
var demoPage string

var demoTemplate = template.Must(template.New("demo").Parse(demoPage))

// SpriteRoute is the URL path the served WebVTT points its image
// references at.
const SpriteRoute = "/sprites"

type Options struct {
	// Title is shown by the demo player
	Title string
	// Video is a URL or a local file played by the demo page
	Video string
	// VTTPath and JSONPath are the cue files on disk
	VTTPath  string
	JSONPath string
	// SpriteDir is the directory holding the sprite sheets
	SpriteDir string
}

// localObject is a single file served through an object reader rooted at
// its directory, so absolute and parent relative paths resolve as given.
type localObject struct {
	objects objstore.ObjectReader
	key     string
}

func newLocalObject(file string) localObject {
	return localObject{
		objects: objstore.NewLocalFSObjectReader(filepath.Dir(file)),
		key:     filepath.Base(file),
	}
}

type ApiHandler struct {
	db      *metadata.Database
	vtt     localObject
	json    localObject
	sprites objstore.ObjectReader
	opts    Options
}

// NewApiHandler serves the demo page, the generated deliverables and, when
// db is not nil, cue lookups from the index.
func NewApiHandler(db *metadata.Database, opts Options) http.Handler {
	mux := http.NewServeMux()

	spriteDir := opts.SpriteDir
	if spriteDir == "" {
		spriteDir = "."
	}
	apiHandler := &ApiHandler{
		db:      db,
		vtt:     newLocalObject(opts.VTTPath),
		json:    newLocalObject(opts.JSONPath),
		sprites: objstore.NewLocalFSObjectReader(spriteDir),
		opts:    opts,
	}

	mux.HandleFunc("/{$}", apiHandler.demoHandler)
	mux.HandleFunc("/video", apiHandler.videoHandler)
	mux.HandleFunc("/thumbnails.vtt", apiHandler.vttHandler)
	mux.HandleFunc("/thumbnails.json", apiHandler.jsonHandler)
	mux.HandleFunc(SpriteRoute+"/{file}", apiHandler.spriteHandler)
	mux.HandleFunc("/videos", apiHandler.videosHandler)
	mux.HandleFunc("/cue/{video}/{second}", apiHandler.cueHandler)

	return allowCORS(mux)
}

func allowCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		h.ServeHTTP(w, r)
	})
}

func (h *ApiHandler) isLocalVideo() bool {
	if h.opts.Video == "" || strings.Contains(h.opts.Video, "://") {
		return false
	}
	info, err := os.Stat(h.opts.Video)
	return err == nil && !info.IsDir()
}

func (h *ApiHandler) demoHandler(w http.ResponseWriter, r *http.Request) {
	videoSrc := h.opts.Video
	if h.isLocalVideo() {
		videoSrc = "/video"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := demoTemplate.Execute(w, map[string]string{
		"Title":         h.opts.Title,
		"VideoSrc":      videoSrc,
		"ThumbnailsSrc": "/thumbnails.vtt",
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to render demo page")
	}
}

func (h *ApiHandler) videoHandler(w http.ResponseWriter, r *http.Request) {
	if !h.isLocalVideo() {
		http.Error(w, "Video not found", http.StatusNotFound)
		return
	}
	http.ServeFile(w, r, h.opts.Video)
}

// vttHandler serves the cue file with its image references rewritten to
// the sprite route, wherever the sheets live on disk.
func (h *ApiHandler) vttHandler(w http.ResponseWriter, r *http.Request) {
	obj, ok := h.open(w, h.vtt.objects, h.vtt.key)
	if !ok {
		return
	}
	defer obj.Close()

	b, err := io.ReadAll(obj)
	if err != nil {
		http.Error(w, "Failed to read object", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", objstore.ContentType(h.vtt.key))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, cues.RebaseImageRefs(string(b), SpriteRoute))
}

func (h *ApiHandler) jsonHandler(w http.ResponseWriter, r *http.Request) {
	h.serveObject(w, h.json.objects, h.json.key)
}

func (h *ApiHandler) spriteHandler(w http.ResponseWriter, r *http.Request) {
	file := r.PathValue("file")
	if !strings.HasSuffix(file, ".jpg") || strings.Contains(file, "/") {
		http.Error(w, "Invalid sprite", http.StatusBadRequest)
		return
	}
	h.serveObject(w, h.sprites, file)
}

func (h *ApiHandler) open(w http.ResponseWriter, objects objstore.ObjectReader, key string) (io.ReadCloser, bool) {
	obj, err := objects.Open(key)
	if errors.Is(err, os.ErrNotExist) {
		http.Error(w, "Not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, "Failed to read object", http.StatusInternalServerError)
		return nil, false
	}
	return obj, true
}

func (h *ApiHandler) serveObject(w http.ResponseWriter, objects objstore.ObjectReader, key string) {
	obj, ok := h.open(w, objects, key)
	if !ok {
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", objstore.ContentType(key))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, obj)
}

func (h *ApiHandler) videosHandler(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "No cue index", http.StatusNotFound)
		return
	}
	videos, err := h.db.ListVideos(r.Context())
	if err != nil {
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(videos)
}

func (h *ApiHandler) cueHandler(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		http.Error(w, "No cue index", http.StatusNotFound)
		return
	}

	second, err := strconv.Atoi(r.PathValue("second"))
	if err != nil || second < 0 {
		http.Error(w, "Invalid second", http.StatusBadRequest)
		return
	}

	cue, err := h.db.CueAt(r.Context(), r.PathValue("video"), second)
	if errors.Is(err, metadata.ErrNotFound) {
		http.Error(w, "Cue not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to look up cue", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cue)
}
