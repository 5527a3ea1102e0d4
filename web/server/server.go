// Package server streams renders over HTTP using Server-Sent Events.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-stochastic-raytracer/pkg/core"
	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
	"github.com/df07/go-stochastic-raytracer/pkg/scene"
)

// maxDimension caps the image size a single request may ask for
const maxDimension = 2048

// Server handles web requests for the raytracer
type Server struct {
	port     int
	sceneDir string
	logger   *zap.Logger
	mux      *http.ServeMux
}

// NewServer creates a new web server. Scene files are only served from sceneDir.
func NewServer(port int, sceneDir string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{port: port, sceneDir: sceneDir, logger: logger, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)
	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Preset name or scene file ID ("file:<name>")
	Width           int    `json:"width"`           // Image width, 0 keeps the scene's
	Height          int    `json:"height"`          // Image height, 0 keeps the aspect ratio
	SamplesPerPixel int    `json:"samplesPerPixel"` // 0 keeps the scene's
	MaxBounces      int    `json:"maxBounces"`      // -1 keeps the scene's
	Seed            uint64 `json:"seed"`            // 0 keeps the scene's
	Mode            string `json:"mode"`            // Debug visualization
}

// Stats represents render statistics
type Stats struct {
	TotalPixels    int     `json:"totalPixels"`
	TotalSamples   int     `json:"totalSamples"`
	AverageSamples float64 `json:"averageSamples"`
	TilesRendered  int     `json:"tilesRendered"`
	Tiles          int     `json:"tiles"`
	Workers        int     `json:"workers"`
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errChan; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the scene files, grouped
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.sceneDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()

	req := &RenderRequest{
		Scene: query.Get("scene"),
		Mode:  query.Get("mode"),
	}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, 0, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(query, "height", 0, 0, maxDimension); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(query, "spp", 0, 0, 1<<16); err != nil {
		return nil, err
	}
	if req.MaxBounces, err = parseIntParam(query, "bounces", -1, -1, core.MaxBounceLimit); err != nil {
		return nil, err
	}
	if seed := query.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}
	if _, err := renderer.ParseMode(req.Mode); err != nil {
		return nil, err
	}
	return req, nil
}

// parseIntParam parses an integer parameter with bounds checking
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	str := values.Get(key)
	if str == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(str)
	if err != nil || value < min || value > max {
		return 0, fmt.Errorf("invalid %s: %s (must be %d-%d)", key, str, min, max)
	}

	return value, nil
}

// openScene resolves a preset name or a "file:" ID from the scene directory.
// Arbitrary paths are never opened.
func (s *Server) openScene(id string) (*scene.Scene, error) {
	name, isFile := strings.CutPrefix(id, "file:")
	if !isFile {
		return scene.Preset(name)
	}

	files, err := scene.ListSceneFiles(s.sceneDir)
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			return scene.LoadFile(info.FilePath)
		}
	}
	return nil, fmt.Errorf("%w: no scene file %q", scene.ErrInvalidScene, name)
}

// newJob builds the scene, index and render job described by req
func (s *Server) newJob(req *RenderRequest, logger *zap.Logger) (*renderer.RenderJob, error) {
	sceneObj, err := s.openScene(req.Scene)
	if err != nil {
		return nil, err
	}

	options := sceneObj.Options
	if req.SamplesPerPixel > 0 {
		options.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxBounces >= 0 {
		options.MaxBounces = req.MaxBounces
	}
	if req.Seed != 0 {
		options.Seed = req.Seed
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.Mode = renderer.Mode(req.Mode)

	index := scene.BuildAccelerationIndex(sceneObj, options.Seed)
	return renderer.NewRenderJob(sceneObj, index, options, config, logger)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func toArray(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
