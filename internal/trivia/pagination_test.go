package trivia

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: i + 1, Question: "q", Answer: "a", Difficulty: 1, Category: 1}
	}
	return qs
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"3":   3,
		"abc": 1,
		"0":   0,
		"-2":  -2,
		"2.5": 1,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw=%q", raw)
	}
}

func TestPaginateBounds(t *testing.T) {
	qs := makeQuestions(23)

	assert.Len(t, Paginate(qs, 1), 10)
	assert.Equal(t, 11, Paginate(qs, 2)[0].ID)
	assert.Len(t, Paginate(qs, 3), 3)
	assert.Empty(t, Paginate(qs, 4))
	assert.NotNil(t, Paginate(qs, 4))
	assert.Empty(t, Paginate(nil, 1))
	assert.Empty(t, Paginate(qs, 0))
	assert.Empty(t, Paginate(qs, -3))
	assert.Empty(t, Paginate(qs, int(^uint(0)>>1)))
}

func TestPagesReassembleFullList(t *testing.T) {
	for _, total := range []int{0, 1, 9, 10, 11, 20, 57} {
		qs := makeQuestions(total)
		pages := (total + QuestionsPerPage - 1) / QuestionsPerPage

		var joined []Question
		for p := 1; p <= pages; p++ {
			page := Paginate(qs, p)
			assert.LessOrEqual(t, len(page), QuestionsPerPage)
			assert.NotEmpty(t, page)
			joined = append(joined, page...)
		}
		assert.Empty(t, Paginate(qs, pages+1), "total=%d", total)

		if total == 0 {
			assert.Empty(t, joined)
			continue
		}
		assert.Equal(t, qs, joined, "total=%d", total)
	}
}
