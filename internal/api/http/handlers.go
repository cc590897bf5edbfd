package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"servicehours-backend/internal/domain"
	"servicehours-backend/internal/security"
	"servicehours-backend/internal/service"

	"github.com/gorilla/mux"
)

// Server bundles the HTTP handlers over the application services.
type Server struct {
	auth          service.AuthService
	events        service.EventService
	registrations service.RegistrationService
	notifications service.NotificationService
	reports       service.ReportService
	tokens        security.TokenManager
}

func NewServer(
	auth service.AuthService,
	events service.EventService,
	registrations service.RegistrationService,
	notifications service.NotificationService,
	reports service.ReportService,
	tokens security.TokenManager,
) *Server {
	return &Server{
		auth:          auth,
		events:        events,
		registrations: registrations,
		notifications: notifications,
		reports:       reports,
		tokens:        tokens,
	}
}

// Router builds the route table. Public-token joins and auth endpoints are
// the only unauthenticated routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/events/{id}/public-join", s.handlePublicJoin).Methods(http.MethodPost)

	authed := r.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(s.tokens))

	authed.HandleFunc("/api/events", s.handleListEvents).Methods(http.MethodGet)
	authed.HandleFunc("/api/events", s.handleCreateEvent).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}", s.handleGetEvent).Methods(http.MethodGet)
	authed.HandleFunc("/api/events/{id}/cancel", s.handleCancelEvent).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/public-token", s.handleEnablePublicToken).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/public-token", s.handleDisablePublicToken).Methods(http.MethodDelete)

	authed.HandleFunc("/api/events/{id}/join", s.handleJoin).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries", s.handleListEntries).Methods(http.MethodGet)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/registration/approve", s.handleApproveRegistration).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/registration/disapprove", s.handleDisapproveRegistration).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/attendance/approve", s.handleApproveAttendance).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/attendance/disapprove", s.handleDisapproveAttendance).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/time-in", s.handleTimeIn).Methods(http.MethodPost)
	authed.HandleFunc("/api/events/{id}/entries/{userID}/time-out", s.handleTimeOut).Methods(http.MethodPost)

	authed.HandleFunc("/api/notifications", s.handleListNotifications).Methods(http.MethodGet)
	authed.HandleFunc("/api/notifications/{id}/read", s.handleMarkNotificationRead).Methods(http.MethodPost)

	authed.HandleFunc("/api/reports/my-hours", s.handleMyHours).Methods(http.MethodGet)
	authed.HandleFunc("/api/reports/events/{id}/hours", s.handleEventHours).Methods(http.MethodGet)

	return r
}

func pathID(r *http.Request, name string) (int32, bool) {
	v, err := strconv.ParseInt(mux.Vars(r)[name], 10, 32)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int32(v), true
}

func actorOr401(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := ActorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authentication")
	}
	return actor, ok
}

// --- auth ---

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "name, email, and a password of at least 8 characters are required")
		return
	}

	user, token, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// --- events ---

type createEventRequest struct {
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartsOn         time.Time `json:"starts_on"`
	EndsOn           time.Time `json:"ends_on"`
	Capacity         *int32    `json:"capacity,omitempty"`
	Visible          bool      `json:"visible"`
	RequiresApproval bool      `json:"requires_approval"`
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ev := &domain.Event{
		Title:            req.Title,
		Description:      req.Description,
		StartsOn:         req.StartsOn,
		EndsOn:           req.EndsOn,
		Capacity:         req.Capacity,
		Visible:          req.Visible,
		RequiresApproval: req.RequiresApproval,
	}
	if err := s.events.CreateEvent(r.Context(), actor, ev); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ev)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.events.ListEvents(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	ev, err := s.events.GetEvent(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	// Entry details are staff-only; participants see the event shell.
	if actor, ok := ActorFromContext(r.Context()); !ok || !actor.Role.CanApprove() {
		ev.Entries = nil
		ev.PublicToken = nil
	}
	writeJSON(w, http.StatusOK, ev)
}

func (s *Server) handleCancelEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := s.events.CancelEvent(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) handleEnablePublicToken(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	token, err := s.events.EnablePublicRegistration(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"public_token": token})
}

func (s *Server) handleDisablePublicToken(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := s.events.DisablePublicRegistration(r.Context(), actor, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// --- registrations ---

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	entry, err := s.registrations.Join(r.Context(), id, actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type publicJoinRequest struct {
	UserID int32  `json:"user_id"`
	Token  string `json:"token"`
}

func (s *Server) handlePublicJoin(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	var req publicJoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID <= 0 || req.Token == "" {
		writeError(w, http.StatusBadRequest, "user_id and token are required")
		return
	}

	entry, err := s.registrations.JoinWithToken(r.Context(), id, req.UserID, req.Token)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	entries, err := s.registrations.ListEntries(r.Context(), id, actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// decisionHandler factors the shared shape of the approve/disapprove and
// time-tracking endpoints.
func (s *Server) decisionHandler(withReason bool, apply func(r *http.Request, eventID, userID int32, actor domain.Actor, reason string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := actorOr401(w, r)
		if !ok {
			return
		}
		eventID, ok := pathID(r, "id")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid event id")
			return
		}
		userID, ok := pathID(r, "userID")
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var reason string
		if withReason {
			var req reasonRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
			reason = req.Reason
		}

		if err := apply(r, eventID, userID, actor, reason); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, nil)
	}
}

func (s *Server) handleApproveRegistration(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(false, func(r *http.Request, eventID, userID int32, actor domain.Actor, _ string) error {
		return s.registrations.ApproveRegistration(r.Context(), eventID, userID, actor)
	})(w, r)
}

func (s *Server) handleDisapproveRegistration(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(true, func(r *http.Request, eventID, userID int32, actor domain.Actor, reason string) error {
		return s.registrations.DisapproveRegistration(r.Context(), eventID, userID, actor, reason)
	})(w, r)
}

func (s *Server) handleApproveAttendance(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(false, func(r *http.Request, eventID, userID int32, actor domain.Actor, _ string) error {
		return s.registrations.ApproveAttendance(r.Context(), eventID, userID, actor)
	})(w, r)
}

func (s *Server) handleDisapproveAttendance(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(true, func(r *http.Request, eventID, userID int32, actor domain.Actor, reason string) error {
		return s.registrations.DisapproveAttendance(r.Context(), eventID, userID, actor, reason)
	})(w, r)
}

func (s *Server) handleTimeIn(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(false, func(r *http.Request, eventID, userID int32, actor domain.Actor, _ string) error {
		return s.registrations.TimeIn(r.Context(), eventID, userID, actor)
	})(w, r)
}

func (s *Server) handleTimeOut(w http.ResponseWriter, r *http.Request) {
	s.decisionHandler(false, func(r *http.Request, eventID, userID int32, actor domain.Actor, _ string) error {
		return s.registrations.TimeOut(r.Context(), eventID, userID, actor)
	})(w, r)
}

// --- notifications ---

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	notes, total, err := s.notifications.GetNotifications(r.Context(), actor.UserID, int32(page), int32(pageSize))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": notes, "total": total})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.notifications.MarkAsRead(r.Context(), actor.UserID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// --- reports ---

func (s *Server) handleMyHours(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	rows, total, err := s.reports.GetUserHours(r.Context(), actor.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": rows, "total_credited_hours": total})
}

func (s *Server) handleEventHours(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorOr401(w, r)
	if !ok {
		return
	}
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	hours, err := s.reports.GetEventHours(r.Context(), actor, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hours)
}
