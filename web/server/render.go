package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/golang/glog"

	"github.com/df07/go-path-tracer/pkg/core"
	"github.com/df07/go-path-tracer/pkg/renderer"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "progress", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// ProgressUpdate reports finished scanlines
type ProgressUpdate struct {
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// ImageUpdate carries the finished frame
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	ElapsedMs        int64   `json:"elapsedMs"`
	SamplesPerSecond float64 `json:"samplesPerSecond"`
	Objects          int     `json:"objects"`
}

func newStats(frame *renderer.Frame, objects int) Stats {
	return Stats{
		Width:            frame.Width,
		Height:           frame.Height,
		TotalPixels:      frame.Stats.TotalPixels,
		TotalSamples:     frame.Stats.TotalSamples,
		Workers:          frame.Stats.Workers,
		ElapsedMs:        frame.Stats.Duration.Milliseconds(),
		SamplesPerSecond: frame.Stats.SamplesPerSecond(),
		Objects:          objects,
	}
}

// handleRender renders the requested scene and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	logger := renderer.NewGlogLogger()
	sceneObj, camera, err := s.prepareRender(r.Context(), req, logger)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	frame, err := camera.Render(r.Context(), sceneObj.World, renderer.RenderOptions{
		Workers: s.workers,
		Seed:    req.Seed,
		Logger:  logger,
	})
	if err != nil {
		glog.Warningf("Render of %q failed: %v", req.Scene, err)
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image()); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders with scanline progress, console output and the final image streamed via SSE
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)
	ctx := r.Context()

	// A single writer goroutine owns w
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		s.writeSSEEvents(w, ctx, sseEventChan)
		close(writerDone)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
		close(consoleDone)
	}()

	frame, objects, err := s.renderWithProgress(ctx, req, webLogger, sseEventChan)

	// No more logging after the render; drain the console before the final events
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := s.imageToBase64PNG(frame.Image())
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Encoding image: %v", err))
		return
	}
	s.sendEvent(ctx, sseEventChan, "image", ImageUpdate{ImageData: imageData, Stats: newStats(frame, objects)})

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: "Rendering completed"}:
	case <-ctx.Done():
	}
}

func (s *Server) renderWithProgress(ctx context.Context, req *RenderRequest, logger core.Logger, sseEventChan chan SSEEvent) (*renderer.Frame, int, error) {
	sceneObj, camera, err := s.prepareRender(ctx, req, logger)
	if err != nil {
		return nil, 0, err
	}

	logger.Printf("Rendering %s at %dx%d, %d samples per pixel\n", req.Scene, camera.Width(), camera.Height(), camera.Config().SamplesPerPixel)
	total := camera.Height()
	frame, err := camera.Render(ctx, sceneObj.World, renderer.RenderOptions{
		Workers: s.workers,
		Seed:    req.Seed,
		Logger:  logger,
		Progress: func(remaining int) {
			data, _ := json.Marshal(ProgressUpdate{Remaining: remaining, Total: total})
			// Progress is advisory; drop it rather than stall a worker
			select {
			case sseEventChan <- SSEEvent{Type: "progress", Data: string(data)}:
			default:
			}
		},
	})
	if err != nil {
		return nil, 0, err
	}
	return frame, sceneObj.Objects, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes events until the channel closes or the client goes away
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan closes
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			glog.Warningf("Error marshaling console message: %v", err)
			continue
		}
		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		}
	}
}

// sendEvent marshals v and queues it, giving up if the client disconnects
func (s *Server) sendEvent(ctx context.Context, sseEventChan chan SSEEvent, eventType string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		glog.Warningf("Error marshaling %s event: %v", eventType, err)
		return
	}
	select {
	case sseEventChan <- SSEEvent{Type: eventType, Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
