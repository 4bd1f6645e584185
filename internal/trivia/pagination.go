package trivia

import "strconv"

// QuestionsPerPage bounds the number of questions returned by a page request.
const QuestionsPerPage = 10

// ParsePage reads the 1-based page query value. Missing and non-numeric values yield 1;
// numeric values are kept as given, so zero and negative pages come back empty.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return page
}

// Paginate returns the slice of questions for a 1-based page.
// Pages below 1 or past the end yield an empty slice.
func Paginate(questions []Question, page int) []Question {
	if page < 1 || page > len(questions)/QuestionsPerPage+1 {
		return []Question{}
	}
	start := (page - 1) * QuestionsPerPage
	if start >= len(questions) {
		return []Question{}
	}
	end := min(start+QuestionsPerPage, len(questions))
	return questions[start:end]
}
