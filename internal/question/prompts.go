package question

import (
	"fmt"
	"strings"

	"clarion/internal/domain"
)

var categoryPrompts = map[domain.Category]string{
	domain.CategoryMath:     "arithmetic or basic algebra (addition, subtraction, multiplication, division, simple equations)",
	domain.CategoryPatterns: "number sequences and patterns (find the next number in a series)",
	domain.CategoryGeneral:  "general knowledge facts (geography, science, history, nature)",
	domain.CategoryLogic:    "simple logic puzzles and word problems (lateral thinking, riddles)",
}

func buildGenerationPrompt(category domain.Category) string {
	desc, ok := categoryPrompts[category]
	if !ok {
		desc = categoryPrompts[domain.CategoryMath]
	}

	return fmt.Sprintf(`Generate a medium difficulty %s question about %s.

Requirements:
- Question must be under 80 characters
- Exactly 4 answer options
- Wrong options must be plausible
- One correct answer

Respond ONLY with this JSON format, no other text:
{"question":"your question here","options":["A","B","C","D"],"correctIndex":0}`, category, desc)
}

func buildVerificationPrompt(text string) string {
	var b strings.Builder
	b.WriteString("Answer the following question directly. Reply with only the answer, nothing else.\n\n")
	b.WriteString(text)
	return b.String()
}
