package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/df07/go-stochastic-raytracer/pkg/renderer"
)

// TileUpdate represents a single tile update sent via SSE
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"`
}

// CompleteUpdate is sent once the frame is finished
type CompleteUpdate struct {
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	ImageData   string             `json:"imageData"` // Base64 encoded PNG of the frame
	Stats       Stats              `json:"stats"`
	Diagnostics []DiagnosticUpdate `json:"diagnostics,omitempty"`
	ElapsedMs   int64              `json:"elapsedMs"`
}

// DiagnosticUpdate reports one anomaly counter of the frame
type DiagnosticUpdate struct {
	Kind   string `json:"kind"`
	Object string `json:"object"`
	Count  int    `json:"count"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "tile", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// handleRender renders a frame and streams tiles as they finish
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// Single writer goroutine; every producer goes through sseEventChan
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go s.writeSSEEvents(w, ctx, sseEventChan, writerDone)
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", map[string]string{"message": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	consoleChan := make(chan ConsoleMessage, 50)
	consoleDone := make(chan struct{})
	stopConsole := make(chan struct{})
	go s.streamConsoleMessages(ctx, consoleChan, sseEventChan, stopConsole, consoleDone)
	defer func() {
		close(stopConsole)
		<-consoleDone
	}()

	logger := s.logger.With(zap.String("render", renderID)).WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, NewConsoleCore(renderID, zapcore.InfoLevel, consoleChan))
	}))

	job, err := s.newJob(req, logger)
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", map[string]string{"message": err.Error()})
		return
	}

	startTime := time.Now()
	frame, err := job.RenderFrame(ctx, func(progress renderer.TileProgress) {
		imageData, encErr := imageToBase64PNG(progress.TileImage)
		if encErr != nil {
			logger.Warn("tile encoding failed", zap.Error(encErr))
			return
		}
		s.sendEvent(ctx, sseEventChan, "tile", TileUpdate{
			TileX:      progress.Tile.X,
			TileY:      progress.Tile.Y,
			ImageData:  imageData,
			TileNumber: progress.TileNumber,
			TotalTiles: progress.TotalTiles,
		})
	})
	if err != nil {
		// Client disconnected; nobody is listening for the result
		return
	}

	imageData, err := imageToBase64PNG(frame.Image(renderer.DefaultGamma))
	if err != nil {
		s.sendEvent(ctx, sseEventChan, "error", map[string]string{"message": fmt.Sprintf("failed to encode image: %v", err)})
		return
	}

	update := CompleteUpdate{
		Width:     frame.Width,
		Height:    frame.Height,
		ImageData: imageData,
		Stats: Stats{
			TotalPixels:    frame.Stats.TotalPixels,
			TotalSamples:   frame.Stats.TotalSamples,
			AverageSamples: frame.Stats.AverageSamples,
			TilesRendered:  frame.Stats.TilesRendered,
			Tiles:          frame.Stats.Tiles,
			Workers:        frame.Stats.Workers,
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}
	for _, entry := range frame.Diagnostics.Entries() {
		update.Diagnostics = append(update.Diagnostics, DiagnosticUpdate{
			Kind:   string(entry.Kind),
			Object: entry.Object,
			Count:  entry.Count,
		})
	}
	s.sendEvent(ctx, sseEventChan, "complete", update)
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendEvent encodes data and queues it for the writer, giving up when the client is gone
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan<- SSEEvent, eventType string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		s.logger.Warn("event encoding failed", zap.String("type", eventType), zap.Error(err))
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(payload)}:
	case <-ctx.Done():
	}
}

// writeSSEEvents handles writing all SSE events in a single goroutine
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan <-chan SSEEvent, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards log lines until stop is closed, then drains
// whatever is still queued
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case msg := <-consoleChan:
			s.sendEvent(ctx, sseEventChan, "console", msg)
		case <-stop:
			for {
				select {
				case msg := <-consoleChan:
					s.sendEvent(ctx, sseEventChan, "console", msg)
				default:
					return
				}
			}
		case <-ctx.Done():
			return
		}
	}
}
