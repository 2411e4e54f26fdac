// Package server exposes the converter over HTTP for quick previews:
// a one-shot JSON endpoint and a websocket variant with per-face
// progress updates.
package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/avern/go-cubemap/pkg/cubemap"
	"github.com/avern/go-cubemap/pkg/imageio"
	"github.com/avern/go-cubemap/pkg/renderer"
	"github.com/avern/go-cubemap/pkg/texture"
)

// maxUploadBytes bounds panorama uploads.
const maxUploadBytes = 64 << 20

// Server handles web requests for the converter.
type Server struct {
	port   int
	logger *zap.Logger
	mux    *http.ServeMux

	upgrader websocket.Upgrader
}

// ConvertRequest holds the parameters of a conversion request.
type ConvertRequest struct {
	Size          int
	Interpolation texture.Mode
	Rotate        bool
}

// ConvertResponse is the JSON reply of a completed conversion. Faces
// are base64-encoded PNGs keyed by face name.
type ConvertResponse struct {
	Faces     map[string]string `json:"faces"`
	Size      int               `json:"size"`
	ElapsedMs int64             `json:"elapsedMs"`
}

// ProgressUpdate is pushed over the websocket after each face completes.
type ProgressUpdate struct {
	Face       string `json:"face"`
	FacesDone  int    `json:"facesDone"`
	TotalFaces int    `json:"totalFaces"`
	ElapsedMs  int64  `json:"elapsedMs"`
}

// NewServer creates a new web server.
func NewServer(port int, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		port:   port,
		logger: logger,
		mux:    http.NewServeMux(),
		upgrader: websocket.Upgrader{
			// Preview tool: accept cross-origin browser clients.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	s.mux.Handle("/", http.FileServer(http.Dir("static/")))
	s.mux.HandleFunc("/api/convert", s.handleConvert)
	s.mux.HandleFunc("/api/convert/ws", s.handleConvertWS)
	s.mux.HandleFunc("/api/health", s.handleHealth)
	return s
}

// Handler returns the server's HTTP handler, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server and blocks.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting web server", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleConvert converts an uploaded panorama in one shot.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST required", http.StatusMethodNotAllowed)
		return
	}

	req, err := parseConvertRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("invalid upload: %v", err), http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "missing image field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	src, err := imageio.Decode(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("cannot decode image: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	resp, err := s.convert(r.Context(), src, req, nil)
	if err != nil {
		http.Error(w, fmt.Sprintf("conversion failed: %v", err), http.StatusInternalServerError)
		return
	}
	resp.ElapsedMs = time.Since(start).Milliseconds()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// handleConvertWS converts over a websocket, streaming a ProgressUpdate
// after each face and the full ConvertResponse as the final message.
func (s *Server) handleConvertWS(w http.ResponseWriter, r *http.Request) {
	req, err := parseConvertRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid request: %v", err), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// First client message carries the panorama bytes.
	msgType, data, err := conn.ReadMessage()
	if err != nil || msgType != websocket.BinaryMessage {
		s.writeWSError(conn, "expected a binary image message")
		return
	}
	src, err := imageio.Decode(bytes.NewReader(data))
	if err != nil {
		s.writeWSError(conn, fmt.Sprintf("cannot decode image: %v", err))
		return
	}

	start := time.Now()
	onFace := func(face cubemap.Face, done int) {
		update := ProgressUpdate{
			Face:       face.String(),
			FacesDone:  done,
			TotalFaces: len(cubemap.Faces),
			ElapsedMs:  time.Since(start).Milliseconds(),
		}
		if err := conn.WriteJSON(update); err != nil {
			s.logger.Warn("websocket progress write failed", zap.Error(err))
		}
	}

	resp, err := s.convert(r.Context(), src, req, onFace)
	if err != nil {
		s.writeWSError(conn, fmt.Sprintf("conversion failed: %v", err))
		return
	}
	resp.ElapsedMs = time.Since(start).Milliseconds()

	if err := conn.WriteJSON(resp); err != nil {
		s.logger.Warn("websocket result write failed", zap.Error(err))
	}
}

// convert runs the renderer and packages the faces as base64 PNGs.
func (s *Server) convert(ctx context.Context, src *texture.Image, req *ConvertRequest, onFace func(cubemap.Face, int)) (*ConvertResponse, error) {
	opts := renderer.Options{
		Size:       req.Size,
		Mode:       req.Interpolation,
		ZUp:        req.Rotate,
		OnFaceDone: onFace,
		Logger:     s.logger,
	}

	faces, err := renderer.NewRenderer(src, opts).Render(ctx)
	if err != nil {
		return nil, err
	}

	resp := &ConvertResponse{
		Faces: make(map[string]string, len(faces)),
		Size:  req.Size,
	}
	for _, fi := range faces {
		var buf bytes.Buffer
		if err := png.Encode(&buf, fi.Image); err != nil {
			return nil, fmt.Errorf("encode %s face: %w", fi.Face, err)
		}
		resp.Faces[fi.Face.String()] = base64.StdEncoding.EncodeToString(buf.Bytes())
	}
	return resp, nil
}

func (s *Server) writeWSError(conn *websocket.Conn, msg string) {
	_ = conn.WriteJSON(map[string]string{"error": msg})
}

// parseConvertRequest parses and validates query parameters.
func parseConvertRequest(query url.Values) (*ConvertRequest, error) {
	req := &ConvertRequest{
		Size:          256,
		Interpolation: texture.ModeLinear,
	}

	if v := query.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("size: %w", err)
		}
		if size < 1 || size > 4096 {
			return nil, fmt.Errorf("size must be between 1 and 4096, got %d", size)
		}
		req.Size = size
	}

	if v := query.Get("interpolation"); v != "" {
		mode, err := texture.ParseMode(v)
		if err != nil {
			return nil, err
		}
		req.Interpolation = mode
	}

	if v := query.Get("rotate"); v != "" {
		rotate, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("rotate: %w", err)
		}
		req.Rotate = rotate
	}

	return req, nil
}
