package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/renderer"
	"github.com/df07/go-path-tracer/pkg/scene"
)

// Request limits
const (
	maxWidth   = 2000
	maxSamples = 10000
	maxDepth   = 1000
)

const defaultScene = "quick"

// Server handles web requests for the path tracer
type Server struct {
	port        int
	scenesDir   string
	texturePath string
	workers     int
}

// Option configures a Server
type Option func(*Server)

// WithScenesDir sets the directory searched for JSON scene files
func WithScenesDir(dir string) Option {
	return func(s *Server) { s.scenesDir = dir }
}

// WithTexturePath sets the image used by the earth scene
func WithTexturePath(path string) Option {
	return func(s *Server) { s.texturePath = path }
}

// WithWorkers limits the rows rendered concurrently per request
func WithWorkers(workers int) Option {
	return func(s *Server) { s.workers = workers }
}

// NewServer creates a new web server
func NewServer(port int, opts ...Option) *Server {
	s := &Server{
		port:        port,
		scenesDir:   "scenes",
		texturePath: scene.DefaultEarthTexture,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID from /api/scenes
	Width           int    `json:"width"`           // 0 keeps the scene's width
	SamplesPerPixel int    `json:"samplesPerPixel"` // 0 keeps the scene's value
	MaxDepth        int    `json:"maxDepth"`        // 0 keeps the scene's value
	Seed            int64  `json:"seed"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),

		// Renders can run for minutes, so only reads are bounded
		ReadTimeout:    30 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
	glog.Infof("Starting web server on http://localhost%s", addr)
	return httpServer.ListenAndServe()
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and any scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes(s.scenesDir, renderer.NewGlogLogger())
	if err != nil {
		glog.Errorf("Listing scenes: %v", err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the camera a scene renders with by default, plus request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene")
	if sceneID == "" {
		sceneID = defaultScene
	}

	sceneObj, err := s.createScene(r.Context(), sceneID, 0, nil)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":    sceneID,
		"defaults": sceneObj.Camera,
		"limits": map[string]interface{}{
			"width":           map[string]int{"min": 1, "max": maxWidth},
			"samplesPerPixel": map[string]int{"min": 1, "max": maxSamples},
			"maxDepth":        map[string]int{"min": 1, "max": maxDepth},
		},
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxWidth); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, errors.Errorf("invalid seed: %s", seed)
		}
	}
	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene builds a built-in scene, or a scene file for IDs of the form "file:<name>"
func (s *Server) createScene(ctx context.Context, sceneID string, seed int64, logger core.Logger) (*scene.Scene, error) {
	if name := strings.TrimPrefix(sceneID, "file:"); name != sceneID {
		if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
			return nil, errors.Errorf("invalid scene file name %q", name)
		}
		return scene.FromFile(ctx, filepath.Join(s.scenesDir, name+".json"), logger)
	}
	return scene.CreateContext(ctx, sceneID, scene.Options{
		Seed:        seed,
		TexturePath: s.texturePath,
		Logger:      logger,
	})
}

// prepareRender resolves the scene and camera for a request
func (s *Server) prepareRender(ctx context.Context, req *RenderRequest, logger core.Logger) (*scene.Scene, *renderer.Camera, error) {
	sceneObj, err := s.createScene(ctx, req.Scene, req.Seed, logger)
	if err != nil {
		return nil, nil, err
	}
	camera, err := renderer.NewCamera(sceneObj.Camera.WithOverrides(req.Width, req.SamplesPerPixel, req.MaxDepth))
	if err != nil {
		return nil, nil, err
	}
	return sceneObj, camera, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		glog.Warningf("Writing JSON response: %v", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
