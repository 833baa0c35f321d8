package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse documents the /healthz body: one entry per checker.
type HealthResponse map[string]struct {
	Status string `json:"status"`
}

type sessionPath struct {
	ID string `path:"id"`
}

type modePathRequest struct {
	sessionPath
	ModeRequest
}

type answerPathRequest struct {
	sessionPath
	AnswerRequest
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Square Drill API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Chessboard square color training sessions.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of the session registry.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/sessions
	create, _ := r.NewOperationContext(http.MethodPost, "/api/sessions")
	create.SetSummary("Create session")
	create.SetDescription("Creates an idle session. Mode defaults to timed.")
	create.AddReqStructure(CreateSessionRequest{})
	create.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	create.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(create)

	// GET /api/sessions/{id}
	get, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}")
	get.SetSummary("Get session")
	get.SetDescription("Returns the current session state.")
	get.AddReqStructure(sessionPath{})
	get.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	get.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(get)

	// DELETE /api/sessions/{id}
	del, _ := r.NewOperationContext(http.MethodDelete, "/api/sessions/{id}")
	del.SetSummary("Delete session")
	del.SetDescription("Drops the session and cancels its countdown.")
	del.AddReqStructure(sessionPath{})
	del.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	del.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(del)

	// POST /api/sessions/{id}/mode
	mode, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/mode")
	mode.SetSummary("Select mode")
	mode.SetDescription("Switches between timed and free. Stops any running session and resets counters.")
	mode.AddReqStructure(modePathRequest{})
	mode.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	mode.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	mode.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(mode)

	// POST /api/sessions/{id}/toggle
	toggle, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/toggle")
	toggle.SetSummary("Start or stop")
	toggle.SetDescription("Presses the start/stop control. Timed sessions can only be started; free sessions toggle.")
	toggle.AddReqStructure(sessionPath{})
	toggle.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	toggle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(toggle)

	// POST /api/sessions/{id}/answer
	answer, _ := r.NewOperationContext(http.MethodPost, "/api/sessions/{id}/answer")
	answer.SetSummary("Submit answer")
	answer.SetDescription("Answers the current square with light or dark. Ignored unless running.")
	answer.AddReqStructure(answerPathRequest{})
	answer.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	answer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(answer)

	// GET /api/sessions/{id}/events
	events, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/events")
	events.SetSummary("SSE event stream")
	events.SetDescription("Server-Sent Events stream of session snapshots, including countdown ticks.")
	events.AddReqStructure(sessionPath{})
	events.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(events)

	// GET /api/sessions/{id}/ws
	ws, _ := r.NewOperationContext(http.MethodGet, "/api/sessions/{id}/ws")
	ws.SetSummary("Session WebSocket")
	ws.SetDescription("Accepts mode/toggle/answer commands and streams session snapshots.")
	ws.AddReqStructure(sessionPath{})
	ws.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("application/json"))
	_ = r.AddOperation(ws)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
