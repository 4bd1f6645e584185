package trivia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// AllCategoriesType marks a quiz category selection that spans every category.
const AllCategoriesType = "click"

// Question is the client-facing (formatted) representation of a stored question.
type Question struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty int    `json:"difficulty"`
	Category   int    `json:"category"`
}

// Category is a read-only question grouping.
type Category struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
}

// NewQuestion carries the client-supplied fields of a question to insert.
type NewQuestion struct {
	Question   string
	Answer     string
	Difficulty int
	Category   int
}

// CategoryMap renders categories as the {id: type} object the API returns.
// JSON object keys are strings, so ids are formatted accordingly.
func CategoryMap(categories []Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, c := range categories {
		out[strconv.Itoa(c.ID)] = c.Type
	}
	return out
}

// FlexInt decodes from either a JSON number or a numeric string.
// Values must fit the 32-bit integer columns they are stored in.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid integer %s: %w", raw, err)
	}
	*f = FlexInt(n)
	return nil
}
