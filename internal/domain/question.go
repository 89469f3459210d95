package domain

import "fmt"

// Category partitions the question catalog.
type Category string

const (
	CategoryMath     Category = "math"
	CategoryPatterns Category = "patterns"
	CategoryGeneral  Category = "general"
	CategoryLogic    Category = "logic"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[Category]bool{
	CategoryMath: true, CategoryPatterns: true,
	CategoryGeneral: true, CategoryLogic: true,
}

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryMath, CategoryPatterns, CategoryGeneral, CategoryLogic,
}

// QuestionSource records where a question came from. Advisory metadata
// only; it never affects how a question is served or scored.
type QuestionSource string

const (
	SourceBank      QuestionSource = "bank"
	SourceGenerated QuestionSource = "generated"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// MaxQuestionLen bounds the question text length.
const MaxQuestionLen = 120

// Question is a single quiz item. Never mutated in place once created.
type Question struct {
	ID           string         `json:"id"`
	Category     Category       `json:"category"`
	Text         string         `json:"question"`
	Options      []string       `json:"options"`
	CorrectIndex int            `json:"correctIndex"`
	Source       QuestionSource `json:"source,omitempty"`
}

// Validate checks the structural invariants a question must satisfy
// before it is eligible for serving.
func (q *Question) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Text) > MaxQuestionLen {
		return fmt.Errorf("question text exceeds %d characters", MaxQuestionLen)
	}
	if len(q.Options) != OptionCount {
		return fmt.Errorf("expected %d options, got %d", OptionCount, len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= OptionCount {
		return fmt.Errorf("correctIndex %d out of range", q.CorrectIndex)
	}
	return nil
}

// Provenance tags how a batch of questions was produced. Observability
// only; downstream correctness never depends on it.
type Provenance string

const (
	ProvenanceLLM      Provenance = "llm"
	ProvenanceMixed    Provenance = "mixed"
	ProvenanceFallback Provenance = "fallback"
	ProvenancePool     Provenance = "pool"
)

// QuestionSet is the prepared batch bound to an alarm so a session can
// start without any generation latency.
type QuestionSet struct {
	AlarmID     string     `json:"alarmId"`
	Difficulty  Difficulty `json:"difficulty"`
	Categories  []Category `json:"categories"`
	Questions   []Question `json:"questions"`
	GeneratedAt int64      `json:"generatedAt"` // unix millis
	Source      Provenance `json:"source"`
}

// MatchesConfig reports whether the set was built for the given
// difficulty and category selection.
func (s *QuestionSet) MatchesConfig(d Difficulty, categories []Category) bool {
	if s.Difficulty != d || len(s.Categories) != len(categories) {
		return false
	}
	have := make(map[Category]bool, len(s.Categories))
	for _, c := range s.Categories {
		have[c] = true
	}
	for _, c := range categories {
		if !have[c] {
			return false
		}
	}
	return true
}
