package trivia

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/logging"
	httperrors "github.com/gokatarajesh/trivia-api/pkg/http/errors"
)

// HTTPHandlers exposes the trivia REST endpoints.
type HTTPHandlers struct {
	svc    *Service
	logger zerolog.Logger
}

// NewHTTPHandlers constructs the trivia HTTP handlers.
func NewHTTPHandlers(svc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		svc:    svc,
		logger: logger.With().Str("component", "trivia_http").Logger(),
	}
}

// Register mounts every trivia route on mux.
func (h *HTTPHandlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.ListCategories)
	mux.HandleFunc("GET /questions", h.ListQuestions)
	mux.HandleFunc("DELETE /questions/{id}", h.DeleteQuestion)
	mux.HandleFunc("POST /questions", h.CreateQuestion)
	mux.HandleFunc("POST /questions/search", h.SearchQuestions)
	mux.HandleFunc("GET /categories/{id}/questions", h.ListCategoryQuestions)
	mux.HandleFunc("POST /quizzes", h.PlayQuiz)
}

// ListCategories handles GET /categories
func (h *HTTPHandlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Categories(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("list categories failed")
		httperrors.RespondInternalError(w)
		return
	}
	if !res.Found {
		httperrors.RespondNotFound(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":    true,
		"categories": CategoryMap(res.Value),
	})
}

// ListQuestions handles GET /questions?page=N
func (h *HTTPHandlers) ListQuestions(w http.ResponseWriter, r *http.Request) {
	page := ParsePage(r.URL.Query().Get("page"))

	res, err := h.svc.QuestionPage(r.Context(), page)
	if err != nil {
		h.log(r).Error().Err(err).Int("page", page).Msg("list questions failed")
		httperrors.RespondInternalError(w)
		return
	}
	if !res.Found {
		httperrors.RespondNotFound(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        res.Value.Questions,
		"total_questions":  res.Value.Total,
		"categories":       CategoryMap(res.Value.Categories),
		"current_category": nil,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
func (h *HTTPHandlers) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	if err := h.svc.DeleteQuestion(r.Context(), id); err != nil {
		if IsNotFound(err) {
			httperrors.RespondNotFound(w)
			return
		}
		h.log(r).Error().Err(err).Int("question_id", id).Msg("delete question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"deleted": id,
	})
}

// CreateQuestion handles POST /questions
func (h *HTTPHandlers) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var req CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w)
		return
	}
	if err := req.Validate(); err != nil {
		h.log(r).Debug().Err(err).Msg("create question rejected")
		httperrors.RespondBadRequest(w)
		return
	}

	id, err := h.svc.CreateQuestion(r.Context(), req.ToNewQuestion())
	if err != nil {
		h.log(r).Error().Err(err).Msg("create question failed")
		httperrors.RespondUnprocessable(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success": true,
		"created": id,
	})
}

// SearchQuestions handles POST /questions/search
func (h *HTTPHandlers) SearchQuestions(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w)
		return
	}

	res, err := h.svc.Search(r.Context(), req.SearchTerm)
	if err != nil {
		h.log(r).Error().Err(err).Str("term", req.SearchTerm).Msg("search questions failed")
		httperrors.RespondInternalError(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        res.Questions,
		"total_questions":  res.Total,
		"current_category": nil,
	})
}

// ListCategoryQuestions handles GET /categories/{id}/questions
func (h *HTTPHandlers) ListCategoryQuestions(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := pathID(r)
	if !ok {
		httperrors.RespondNotFound(w)
		return
	}

	res, err := h.svc.QuestionsByCategory(r.Context(), categoryID)
	if err != nil {
		h.log(r).Error().Err(err).Int("category_id", categoryID).Msg("list category questions failed")
		httperrors.RespondInternalError(w)
		return
	}
	if !res.Found {
		httperrors.RespondNotFound(w)
		return
	}

	writeJSON(w, map[string]interface{}{
		"success":          true,
		"questions":        res.Value,
		"total_questions":  len(res.Value),
		"current_category": categoryID,
	})
}

// PlayQuiz handles POST /quizzes
// Missing quiz_category or previous_questions is answered with 422, not 400.
func (h *HTTPHandlers) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		if malformedJSON(err) {
			httperrors.RespondBadRequest(w)
			return
		}
		h.log(r).Debug().Err(err).Msg("quiz request has unusable values")
		httperrors.RespondUnprocessable(w)
		return
	}
	if err := req.Validate(); err != nil {
		h.log(r).Debug().Err(err).Msg("quiz request rejected")
		httperrors.RespondUnprocessable(w)
		return
	}

	next, err := h.svc.NextQuizQuestion(r.Context(), req.Category(), req.Previous())
	if err != nil {
		h.log(r).Error().Err(err).Msg("select quiz question failed")
		httperrors.RespondInternalError(w)
		return
	}

	// An exhausted quiz is reported as an empty string.
	var question interface{} = ""
	if next != nil {
		question = next
	}

	writeJSON(w, map[string]interface{}{
		"success":  true,
		"question": question,
	})
}

func (h *HTTPHandlers) log(r *http.Request) *zerolog.Logger {
	logger := logging.FromContext(r.Context())
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}
	return &logger
}

// malformedJSON separates unparseable bodies from well-formed ones carrying bad values.
func malformedJSON(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

// pathID parses the {id} path segment. Ids are 32-bit in storage, so larger values match nothing.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 32)
	if err != nil || id < 0 {
		return 0, false
	}
	return int(id), true
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		httperrors.RespondInternalError(w)
	}
}
