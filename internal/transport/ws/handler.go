package ws

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/VanderY/proctoring-bot/internal/app"
	"github.com/VanderY/proctoring-bot/internal/domain"
	"github.com/gorilla/websocket"
)

// Handler exposes the survey flow over a websocket, for local
// development and smoke tests without a bot token. Messages are
// processed in the read loop, one at a time, so a connection's
// interactions keep arrival order.
type Handler struct {
	service  *app.SurveyService
	upgrader websocket.Upgrader
}

func NewHandler(service *app.SurveyService) *Handler {
	return &Handler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string `json:"type"`
	Payload string `json:"payload,omitempty"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type questionPayload struct {
	TestName string   `json:"testName"`
	Index    int      `json:"index"`
	Total    int      `json:"total"`
	Prompt   string   `json:"prompt"`
	Choices  []string `json:"choices"`
	Payloads []string `json:"payloads"` // callback payload per choice
}

type finishedPayload struct {
	TestName string `json:"testName"`
	Summary  string `json:"summary"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and wires the connection into the survey
// state machine. The client identifies itself via userId/name query
// params and sends {"type":"ready"} or {"type":"callback","payload":"…"}.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	name := r.URL.Query().Get("name")
	if userID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	user := app.Identity{ID: userID, Name: name}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "ready":
			if err := h.service.Ready(r.Context(), user); err != nil {
				h.writeError(conn, err)
				continue
			}
			_ = conn.WriteJSON(outboundMessage[string]{Type: "ready", Payload: "ожидайте начала теста"})

		case "callback":
			action, err := app.ParseAction(inbound.Payload)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			if action.Kind == app.ActionReady {
				_ = conn.WriteJSON(outboundMessage[string]{Type: "waiting", Payload: "ожидайте начала теста"})
				continue
			}

			step, err := h.service.Advance(r.Context(), user, action)
			if err != nil {
				h.writeError(conn, err)
				continue
			}
			h.writeStep(conn, step)

		default:
			h.writeError(conn, errors.New("unsupported message type"))
		}
	}
}

func (h *Handler) writeStep(conn *websocket.Conn, step app.Step) {
	switch step.Kind {
	case app.StepAskQuestion:
		question := step.Question
		payloads := make([]string, 0, len(question.Choices()))
		for _, choice := range question.Choices() {
			payloads = append(payloads, fmt.Sprintf("%s;%s;%d;%s", app.ActionQuestion, step.TestName, question.Index, choice))
		}
		_ = conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
			TestName: step.TestName,
			Index:    question.Index,
			Total:    step.Total,
			Prompt:   question.Prompt(),
			Choices:  question.Choices(),
			Payloads: payloads,
		}})
	case app.StepFinished:
		_ = conn.WriteJSON(outboundMessage[finishedPayload]{Type: "finished", Payload: finishedPayload{
			TestName: step.TestName,
			Summary:  step.Summary,
		}})
	}
}

func (h *Handler) writeError(conn *websocket.Conn, err error) {
	message := "internal error"
	switch {
	case errors.Is(err, domain.ErrNotStudent):
		message = "only students can take tests"
	case errors.Is(err, domain.ErrMalformedPayload):
		message = "malformed payload"
	case errors.Is(err, domain.ErrTestNotFound):
		message = "test not found"
	case errors.Is(err, domain.ErrSessionNotFound):
		message = "session expired"
	case errors.Is(err, domain.ErrBackingStoreUnavailable):
		message = "result could not be recorded"
	}
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}
