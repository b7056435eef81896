package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"

	"roomgrid/internal/board/service"
	apperrors "roomgrid/pkg/errors"
	httputil "roomgrid/pkg/http"
	kafka_middleware "roomgrid/pkg/kafka/middleware"
	"roomgrid/pkg/logger"
	"roomgrid/pkg/middleware"
)

const maxAuthBodyBytes = 4 << 10

type AuthRequest struct {
	Token string `json:"token"`
}

type AuthResponse struct {
	Authenticated bool `json:"authenticated"`
}

type RealtimeStatus struct {
	Clients int `json:"clients"`
}

type StatusResponse struct {
	Board    service.StatusReport              `json:"board"`
	Realtime *RealtimeStatus                   `json:"realtime,omitempty"`
	Kafka    *kafka_middleware.MetricsSnapshot `json:"kafka,omitempty"`
}

type BoardHandler struct {
	service         service.BoardService
	ws              http.Handler
	realtimeClients func() int
	kafkaMetrics    func() kafka_middleware.MetricsSnapshot
	log             *logger.Logger
}

type Option func(*BoardHandler)

// WithRealtimeClients reports the connected websocket clients on /api/v1/status.
func WithRealtimeClients(count func() int) Option {
	return func(h *BoardHandler) {
		h.realtimeClients = count
	}
}

// WithKafkaMetrics exposes the change consumer counters on /api/v1/status.
func WithKafkaMetrics(snapshot func() kafka_middleware.MetricsSnapshot) Option {
	return func(h *BoardHandler) {
		h.kafkaMetrics = snapshot
	}
}

func NewBoardHandler(svc service.BoardService, ws http.Handler, log *logger.Logger, opts ...Option) *BoardHandler {
	h := &BoardHandler{
		service: svc,
		ws:      ws,
		log:     log,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *BoardHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/rooms", h.ListRooms)
	router.GET("/api/v1/rooms/:id", h.GetRoom)
	router.GET("/api/v1/rooms/:id/week", h.Week)
	router.GET("/api/v1/rooms/:id/calendar", h.Calendar)
	router.POST("/api/v1/rooms/:id/calendar/next", h.NextWeek)
	router.POST("/api/v1/rooms/:id/calendar/previous", h.PreviousWeek)
	router.POST("/api/v1/rooms/:id/calendar/today", h.CurrentWeek)
	router.GET("/api/v1/rooms/:id/slots", h.Slot)
	router.POST("/api/v1/auth", h.Auth)
	router.POST("/api/v1/refresh", h.Refresh)
	router.GET("/api/v1/status", h.Status)
	if h.ws != nil {
		router.Handler(http.MethodGet, "/api/v1/ws", h.ws)
	}
}

func (h *BoardHandler) ListRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms := h.service.ListRooms(r.Context())
	if err := httputil.WriteList(w, rooms, len(rooms)); err != nil {
		h.log.Error("failed to write list response", "handler", "ListRooms", "operation", "WriteList", "error", err)
	}
}

func (h *BoardHandler) GetRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := h.service.GetRoom(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetRoom", err)
		return
	}
	h.writeSuccess(w, "GetRoom", room)
}

// Week renders the week around ?date (today when absent) without any
// per-viewer state.
func (h *BoardHandler) Week(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	today := h.service.Today()
	anchor, err := httputil.ExtractDate(r, "date", today.Location(), today)
	if err != nil {
		h.writeError(w, "Week", err)
		return
	}

	view, err := h.service.WeekView(r.Context(), ps.ByName("id"), anchor, h.viewOptions(r))
	if err != nil {
		h.writeError(w, "Week", err)
		return
	}
	h.writeSuccess(w, "Week", view)
}

func (h *BoardHandler) Calendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.calendar(w, r, ps, service.Stay, "Calendar")
}

func (h *BoardHandler) NextWeek(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.calendar(w, r, ps, service.Next, "NextWeek")
}

func (h *BoardHandler) PreviousWeek(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.calendar(w, r, ps, service.Previous, "PreviousWeek")
}

func (h *BoardHandler) CurrentWeek(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	h.calendar(w, r, ps, service.Today, "CurrentWeek")
}

func (h *BoardHandler) calendar(w http.ResponseWriter, r *http.Request, ps httprouter.Params, move service.Move, name string) {
	viewerID, err := h.viewerID(w, r, move != service.Stay)
	if err != nil {
		h.writeError(w, name, err)
		return
	}

	view, err := h.service.CalendarView(r.Context(), viewerID, ps.ByName("id"), move, h.viewOptions(r))
	if err != nil {
		h.writeError(w, name, err)
		return
	}
	h.writeSuccess(w, name, view)
}

func (h *BoardHandler) Slot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	slot := strings.TrimSpace(r.URL.Query().Get("slot"))
	if slot == "" {
		h.writeError(w, "Slot", apperrors.InvalidInput("slot parameter is required, e.g. slot=9:00"))
		return
	}

	today := h.service.Today()
	day, err := httputil.ExtractDate(r, "date", today.Location(), today)
	if err != nil {
		h.writeError(w, "Slot", err)
		return
	}

	detail, err := h.service.SlotDetail(r.Context(), ps.ByName("id"), day, slot, h.viewOptions(r))
	if err != nil {
		h.writeError(w, "Slot", err)
		return
	}
	h.writeSuccess(w, "Slot", detail)
}

// Auth checks a token sent in the body or as a bearer header. A wrong token
// is not an error: the answer is simply false.
func (h *BoardHandler) Auth(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req AuthRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxAuthBodyBytes)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Auth", apperrors.InvalidInput("Invalid request body"))
		return
	}

	token := req.Token
	if strings.TrimSpace(token) == "" {
		token = middleware.BearerToken(r)
	}

	ok := h.service.CheckToken(token)
	if !ok {
		h.log.Info("Authentication attempt rejected",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"remote_addr", r.RemoteAddr,
		)
	}

	if err := httputil.WriteJSON(w, http.StatusOK, AuthResponse{Authenticated: ok}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Auth", "operation", "WriteJSON", "error", err)
	}
}

func (h *BoardHandler) Refresh(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if !middleware.IsAuthenticated(r.Context()) {
		h.writeError(w, "Refresh", apperrors.Unauthorized("A valid bearer token is required to refresh"))
		return
	}

	status, err := h.service.Refresh(r.Context())
	if err != nil {
		h.writeError(w, "Refresh", err)
		return
	}

	h.log.Info("Manual snapshot refresh",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"rooms", status.Rooms,
		"bookings", status.Bookings,
	)
	h.writeSuccess(w, "Refresh", status)
}

func (h *BoardHandler) Status(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := StatusResponse{Board: h.service.Status()}
	if h.realtimeClients != nil {
		resp.Realtime = &RealtimeStatus{Clients: h.realtimeClients()}
	}
	if h.kafkaMetrics != nil {
		m := h.kafkaMetrics()
		resp.Kafka = &m
	}
	h.writeSuccess(w, "Status", resp)
}

func (h *BoardHandler) viewOptions(r *http.Request) service.ViewOptions {
	return service.ViewOptions{
		Policy:   strings.TrimSpace(r.URL.Query().Get("policy")),
		Detailed: middleware.IsAuthenticated(r.Context()),
	}
}

// viewerID returns the caller's X-Viewer-ID. When the request carries none,
// a fresh one is issued in the response header only if issue is set; reads
// stay anonymous until the viewer first navigates.
func (h *BoardHandler) viewerID(w http.ResponseWriter, r *http.Request, issue bool) (string, error) {
	raw := strings.TrimSpace(r.Header.Get(middleware.ViewerIDHeader))
	if raw == "" {
		if !issue {
			return "", nil
		}
		id := uuid.NewString()
		w.Header().Set(middleware.ViewerIDHeader, id)
		return id, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.InvalidInput(middleware.ViewerIDHeader + " must be a UUID")
	}
	w.Header().Set(middleware.ViewerIDHeader, id.String())
	return id.String(), nil
}

func (h *BoardHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *BoardHandler) writeSuccess(w http.ResponseWriter, handler string, data any) {
	if err := httputil.WriteSuccess(w, data); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}
