package exam

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"examgen/internal/httpserver"
	"examgen/internal/middleware"
)

const msgBodyTooLarge = "Request body is too large."

type HandlerDeps struct {
	Service      *Service
	Logger       *slog.Logger
	MaxBodyBytes int64
}

// Handler serves the exam and answer key endpoints.
type Handler struct {
	service      *Service
	logger       *slog.Logger
	maxBodyBytes int64
}

func NewHandler(deps HandlerDeps) *Handler {
	return &Handler{
		service:      deps.Service,
		logger:       deps.Logger,
		maxBodyBytes: deps.MaxBodyBytes,
	}
}

func (h *Handler) GenerateExam(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckConfigured(); err != nil {
		h.fail(w, r, "generate exam", err, msgExamFailed)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, "generate exam", err, msgExamFailed)
		return
	}
	req, err := ParseExamRequest(body)
	if err != nil {
		h.fail(w, r, "generate exam", err, msgExamFailed)
		return
	}

	result, err := h.service.GenerateExam(r.Context(), req)
	if err != nil {
		h.fail(w, r, "generate exam", err, msgExamFailed)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GenerateAnswerKey(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CheckConfigured(); err != nil {
		h.fail(w, r, "generate answer key", err, msgAnswerKeyFailed)
		return
	}

	body, err := h.readBody(w, r)
	if err != nil {
		h.fail(w, r, "generate answer key", err, msgAnswerKeyFailed)
		return
	}
	req, err := ParseAnswerKeyRequest(body)
	if err != nil {
		h.fail(w, r, "generate answer key", err, msgAnswerKeyFailed)
		return
	}

	result, err := h.service.GenerateAnswerKey(r.Context(), req)
	if err != nil {
		h.fail(w, r, "generate answer key", err, msgAnswerKeyFailed)
		return
	}
	httpserver.WriteJSON(w, http.StatusOK, result)
}

// readBody returns the raw body. Read failures other than the size limit
// yield an empty body, which then fails validation with the endpoint's
// required-field message.
func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	reader := r.Body
	if h.maxBodyBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, newValidationError(msgBodyTooLarge)
		}
		return nil, nil
	}
	return body, nil
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error, genericMessage string) {
	e := Classify(err, genericMessage)
	status := e.Kind.HTTPStatus()

	if h.logger != nil {
		attrs := []any{
			slog.String("op", op),
			slog.String("kind", e.Kind.String()),
			slog.Int("status", status),
			slog.String("request_id", r.Header.Get(middleware.HeaderRequestID)),
		}
		if e.Err != nil {
			attrs = append(attrs, slog.String("error", e.Err.Error()))
		}
		if status >= http.StatusInternalServerError {
			h.logger.Error("request failed", attrs...)
		} else {
			h.logger.Warn("request failed", attrs...)
		}
	}

	httpserver.WriteJSONError(w, status, e.Message)
}
