package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/uhyunpark/sbewire/params"
	"github.com/uhyunpark/sbewire/pkg/jsonrec"
	"github.com/uhyunpark/sbewire/pkg/sbe"
	"github.com/uhyunpark/sbewire/pkg/storage"
	"github.com/uhyunpark/sbewire/pkg/util"
)

const formatHex = "hex"

// Server handles REST API and WebSocket connections
type Server struct {
	cfg     params.API
	archive storage.Archive
	frames  storage.FrameLog
	router  *mux.Router
	hub     *Hub
	logger  *zap.SugaredLogger
	clock   util.Clock
}

// Option adjusts a Server at construction.
type Option func(*Server)

// WithClock replaces the wall clock used for health and request timing.
func WithClock(c util.Clock) Option { return func(s *Server) { s.clock = c } }

// NewServer creates a new API server. frames may be nil.
func NewServer(cfg params.API, archive storage.Archive, frames storage.FrameLog, logger *zap.Logger, opts ...Option) *Server {
	if frames == nil {
		frames = storage.NewNopLog()
	}
	sugar := logger.Sugar()
	s := &Server{
		cfg:     cfg,
		archive: archive,
		frames:  frames,
		router:  mux.NewRouter(),
		hub:     NewHub(sugar),
		logger:  sugar,
		clock:   util.RealClock{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Codec endpoints
	api.HandleFunc("/encode/{type}", s.handleEncode).Methods("POST")
	api.HandleFunc("/decode", s.handleDecode).Methods("POST")
	api.HandleFunc("/schema", s.handleSchema).Methods("GET")

	// Archive endpoints
	api.HandleFunc("/frames", s.handlePutFrame).Methods("POST")
	api.HandleFunc("/frames", s.handleListFrames).Methods("GET")
	api.HandleFunc("/frames/{key:.+}", s.handleGetFrame).Methods("GET")

	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Handler is the full middleware stack: CORS, request ids, routes.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(s.withRequestID(s.router))
}

// Hub exposes the websocket hub. A handler mounted without Start runs the
// hub on the first websocket connection.
func (s *Server) Hub() *Hub { return s.hub }

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	if s.hub.running.CompareAndSwap(false, true) {
		go s.hub.run(ctx)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Infow("api_server_starting", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Infow("api_server_stopping", "addr", addr)
		return srv.Shutdown(shutdownCtx)
	}
}

// ==============================
// REST Handlers
// ==============================

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	msgType := mux.Vars(r)["type"]
	if _, ok := sbe.TemplateFor(msgType); !ok {
		s.respondError(w, r, http.StatusNotFound, "unknown message type", msgType)
		return
	}
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	m, err := jsonrec.Parse(msgType, body)
	if err != nil {
		s.respondCodecError(w, r, "invalid record", err)
		return
	}
	frame, err := sbe.Encode(m)
	if err != nil {
		s.respondCodecError(w, r, "encode failed", err)
		return
	}

	if r.URL.Query().Get("format") == formatHex {
		respondJSON(w, EncodeResponse{Type: msgType, Length: len(frame), Hex: hexutil.Encode(frame)})
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(frame)))
	_, _ = w.Write(frame)
}

func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.readFrame(w, r)
	if !ok {
		return
	}
	m, _, err := sbe.DecodeNext(frame)
	if err != nil {
		s.respondCodecError(w, r, "decode failed", err)
		return
	}
	out, err := jsonrec.Format(m)
	if err != nil {
		s.respondCodecError(w, r, "format failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Message-Type", m.Meta().Type)
	_, _ = w.Write(out)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, SchemaResponse{
		SchemaID:      sbe.SchemaID,
		SchemaVersion: sbe.SchemaVersion,
		HeaderLength:  sbe.HeaderLength,
		Messages:      sbe.Layouts(),
	})
}

func (s *Server) handlePutFrame(w http.ResponseWriter, r *http.Request) {
	frame, ok := s.readFrame(w, r)
	if !ok {
		return
	}
	rec, err := s.archive.Put(frame)
	if err != nil {
		s.respondCodecError(w, r, "frame rejected", err)
		return
	}
	if err := s.frames.Append(rec.Frame); err != nil {
		// the frame is archived; only the log copy is missing
		s.logger.Errorw("frame_log_append_failed", "key", rec.Key, "err", err)
	}

	info := frameInfo(rec, true)
	s.logger.Infow("frame_archived", "key", rec.Key, "type", rec.Meta.Type, "bytes", len(rec.Frame))
	s.hub.BroadcastToChannel(FramesChannel(rec.Meta.Type), WSMessage{
		Type:    "frame",
		Channel: FramesChannel(rec.Meta.Type),
		Data:    info,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(info)
}

func (s *Server) handleListFrames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := storage.Query{Type: q.Get("type"), Symbol: q.Get("symbol")}
	if query.Type != "" {
		if _, ok := sbe.TemplateFor(query.Type); !ok {
			s.respondError(w, r, http.StatusBadRequest, "unknown message type", query.Type)
			return
		}
	}
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 0 {
			s.respondError(w, r, http.StatusBadRequest, "invalid limit", l)
			return
		}
		query.Limit = n
	}

	recs, err := s.archive.Scan(query)
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "scan failed", err.Error())
		return
	}
	withHex := q.Get("format") == formatHex
	out := make([]FrameInfo, len(recs))
	for i, rec := range recs {
		out[i] = frameInfo(rec, withHex)
	}
	respondJSON(w, out)
}

func (s *Server) handleGetFrame(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	rec, err := s.archive.Get(key)
	if errors.Is(err, storage.ErrFrameNotFound) {
		s.respondError(w, r, http.StatusNotFound, "frame not found", key)
		return
	}
	if err != nil {
		s.respondError(w, r, http.StatusInternalServerError, "load failed", err.Error())
		return
	}
	m, err := sbe.DecodeAny(rec.Frame)
	if err != nil {
		s.respondCodecError(w, r, "stored frame does not decode", err)
		return
	}
	record, err := jsonrec.Format(m)
	if err != nil {
		s.respondCodecError(w, r, "format failed", err)
		return
	}
	respondJSON(w, FrameDetail{FrameInfo: frameInfo(rec, true), Message: record})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, HealthResponse{Status: "ok", Time: s.clock.Now().UTC().Format(time.RFC3339)})
}

// ==============================
// Helper Functions
// ==============================

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "request body too large", strconv.FormatInt(tooBig.Limit, 10))
			return nil, false
		}
		s.respondError(w, r, http.StatusBadRequest, "failed to read request body", err.Error())
		return nil, false
	}
	return body, true
}

// readFrame reads a raw binary body, or a 0x-prefixed hex body when
// ?format=hex is set.
func (s *Server) readFrame(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, ok := s.readBody(w, r)
	if !ok {
		return nil, false
	}
	if r.URL.Query().Get("format") != formatHex {
		return body, true
	}
	frame, err := hexutil.Decode(strings.TrimSpace(string(body)))
	if err != nil {
		s.respondError(w, r, http.StatusBadRequest, "invalid hex body", err.Error())
		return nil, false
	}
	return frame, true
}

func frameInfo(rec storage.Record, withHex bool) FrameInfo {
	info := FrameInfo{
		Key:       rec.Key,
		Digest:    rec.Digest,
		Type:      rec.Meta.Type,
		Symbol:    rec.Meta.Symbol,
		Timestamp: rec.Meta.Timestamp,
		Length:    len(rec.Frame),
	}
	if withHex {
		info.Hex = hexutil.Encode(rec.Frame)
	}
	return info
}

// statusFor maps codec error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, sbe.ErrUnknownSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sbe.ErrMalformedEnum),
		errors.Is(err, sbe.ErrOutOfBounds),
		errors.Is(err, sbe.ErrOversizedField),
		errors.Is(err, sbe.ErrInvalidText),
		errors.Is(err, sbe.ErrMissingField):
		return http.StatusBadRequest
	}
	var syntax *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntax) || errors.As(err, &typeErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *Server) respondCodecError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	resp := ErrorResponse{
		Error:     msg,
		Message:   err.Error(),
		RequestID: util.RequestIDFromContext(r.Context()),
	}
	var fe *sbe.FieldError
	if errors.As(err, &fe) && fe.Field != "" {
		resp.Field = fe.Message + "." + fe.Field
	}
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Errorw("api_internal_error", "request_id", resp.RequestID, "err", err)
	}
	writeError(w, status, resp)
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, status int, msg, detail string) {
	writeError(w, status, ErrorResponse{
		Error:     msg,
		Message:   detail,
		RequestID: util.RequestIDFromContext(r.Context()),
	})
}

func respondJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
