package trivia

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// CreateQuestionRequest is the body of POST /questions. All four fields are required.
type CreateQuestionRequest struct {
	Question   *string  `json:"question" validate:"required"`
	Answer     *string  `json:"answer" validate:"required"`
	Difficulty *FlexInt `json:"difficulty" validate:"required"`
	Category   *FlexInt `json:"category" validate:"required"`
}

// Validate reports the first missing field.
func (r CreateQuestionRequest) Validate() error {
	return validateStruct(r)
}

// ToNewQuestion converts a validated request.
func (r CreateQuestionRequest) ToNewQuestion() NewQuestion {
	return NewQuestion{
		Question:   *r.Question,
		Answer:     *r.Answer,
		Difficulty: int(*r.Difficulty),
		Category:   int(*r.Category),
	}
}

// SearchRequest is the body of POST /questions/search.
type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// QuizRequest is the body of POST /quizzes.
type QuizRequest struct {
	QuizCategory      *QuizCategoryPayload `json:"quiz_category" validate:"required"`
	PreviousQuestions []FlexInt            `json:"previous_questions" validate:"required"`
}

// QuizCategoryPayload mirrors the {id, type} object posted by the quiz client.
type QuizCategoryPayload struct {
	ID   FlexInt `json:"id"`
	Type string  `json:"type"`
}

// Validate reports the first missing field.
func (r QuizRequest) Validate() error {
	return validateStruct(r)
}

// Category converts the payload selection.
func (r QuizRequest) Category() QuizCategory {
	return QuizCategory{ID: int(r.QuizCategory.ID), Type: r.QuizCategory.Type}
}

// Previous returns the ids already presented in this session.
func (r QuizRequest) Previous() []int {
	ids := make([]int, len(r.PreviousQuestions))
	for i, id := range r.PreviousQuestions {
		ids[i] = int(id)
	}
	return ids
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &ValidationError{Field: verrs[0].Field()}
	}
	return err
}
