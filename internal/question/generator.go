// Package question turns raw model output into verified Question values,
// substituting bank questions whenever the generator cannot deliver.
package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"clarion/internal/bank"
	"clarion/internal/domain"
	"clarion/internal/genai"
	"clarion/internal/retry"
)

// Completer is the slice of the model adapter the generator needs.
// Satisfied by *genai.Adapter.
type Completer interface {
	Ready() bool
	Complete(ctx context.Context, prompt string, opts genai.Options) (string, error)
}

// Generator produces verified questions, falling back to the bank catalog
// for every slot the model cannot fill.
type Generator struct {
	llm    Completer
	bank   *bank.Catalog
	policy retry.Policy
}

func NewGenerator(llm Completer, catalog *bank.Catalog) *Generator {
	return &Generator{
		llm:    llm,
		bank:   catalog,
		policy: retry.Policy{MaxAttempts: 2, Backoff: retry.None()},
	}
}

type rawQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
}

func validateRaw(r rawQuestion) error {
	if strings.TrimSpace(r.Question) == "" {
		return fmt.Errorf("empty question text")
	}
	if len(r.Options) != domain.OptionCount {
		return fmt.Errorf("expected %d options, got %d", domain.OptionCount, len(r.Options))
	}
	for i, opt := range r.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if r.CorrectIndex < 0 || r.CorrectIndex >= domain.OptionCount {
		return fmt.Errorf("correctIndex %d out of range", r.CorrectIndex)
	}
	return nil
}

// GenerateOne asks the model for a single question in the given category.
// Returns nil on any completion, parse, or validation failure.
func (g *Generator) GenerateOne(ctx context.Context, category domain.Category) *domain.Question {
	resp, err := g.llm.Complete(ctx, buildGenerationPrompt(category), genai.Options{
		MaxTokens:   256,
		Temperature: 0.8,
		Purpose:     "generate_question",
	})
	if err != nil {
		return nil
	}

	raw, err := genai.ExtractJSON[rawQuestion](resp, validateRaw)
	if err != nil {
		return nil
	}

	text := strings.TrimSpace(raw.Question)
	if len(text) > domain.MaxQuestionLen {
		text = text[:domain.MaxQuestionLen]
	}

	q := &domain.Question{
		ID:           fmt.Sprintf("llm-%s-%s", category, uuid.NewString()),
		Category:     category,
		Text:         text,
		Options:      raw.Options[:domain.OptionCount],
		CorrectIndex: raw.CorrectIndex,
		Source:       domain.SourceGenerated,
	}
	if err := q.Validate(); err != nil {
		return nil
	}
	return q
}

// Verification is the outcome of a self-consistency check. FixedIndex is
// -1 unless the model's answer matched a different option than the one
// marked correct, in which case it carries the corrected index.
type Verification struct {
	Valid      bool
	FixedIndex int
}

// Verify re-asks the model the bare question and checks its free-text
// answer against the options. A match on a different option repairs the
// question instead of rejecting it.
func (g *Generator) Verify(ctx context.Context, q *domain.Question) Verification {
	resp, err := g.llm.Complete(ctx, buildVerificationPrompt(q.Text), genai.Options{
		MaxTokens:   32,
		Temperature: 0.1,
		Purpose:     "verify_question",
	})
	if err != nil {
		return Verification{Valid: false, FixedIndex: -1}
	}

	matched := matchOption(resp, q.Options)
	if matched < 0 {
		return Verification{Valid: false, FixedIndex: -1}
	}
	if matched != q.CorrectIndex {
		return Verification{Valid: true, FixedIndex: matched}
	}
	return Verification{Valid: true, FixedIndex: -1}
}

// matchOption finds the option the answer refers to. Exact matches win
// over containment so short options like "1" cannot shadow "11".
func matchOption(answer string, options []string) int {
	ans := normalizeAnswer(answer)
	if ans == "" {
		return -1
	}
	norm := make([]string, len(options))
	for i, opt := range options {
		norm[i] = normalizeAnswer(opt)
	}
	for i, opt := range norm {
		if ans == opt {
			return i
		}
	}
	for i, opt := range norm {
		if opt == "" {
			continue
		}
		if strings.Contains(ans, opt) || strings.Contains(opt, ans) {
			return i
		}
	}
	return -1
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimRight(s, ".!?")
	return strings.Join(strings.Fields(s), " ")
}

// GenerateVerified runs generation plus verification under a bounded
// retry policy, applying the repaired index when one is returned. Returns
// nil once attempts are exhausted.
func (g *Generator) GenerateVerified(ctx context.Context, category domain.Category) *domain.Question {
	var out *domain.Question
	err := g.policy.Do(ctx, func(ctx context.Context) error {
		q := g.GenerateOne(ctx, category)
		if q == nil {
			return fmt.Errorf("generation failed for %s", category)
		}
		v := g.Verify(ctx, q)
		if !v.Valid {
			return fmt.Errorf("verification failed for %s", category)
		}
		if v.FixedIndex >= 0 {
			q.CorrectIndex = v.FixedIndex
		}
		out = q
		return nil
	})
	if err != nil {
		return nil
	}
	return out
}

// GenerateSet returns exactly count questions, round-robining the given
// categories and substituting a bank sample for every slot the model
// fails. The provenance tag describes how the batch was produced and has
// no bearing on how it is consumed.
func (g *Generator) GenerateSet(ctx context.Context, categories []domain.Category, count int) ([]domain.Question, domain.Provenance) {
	if len(categories) == 0 {
		categories = domain.AllCategories
	}
	if count <= 0 {
		return nil, domain.ProvenanceFallback
	}

	if g.llm == nil || !g.llm.Ready() {
		return g.bank.Sample(categories, count), domain.ProvenanceFallback
	}

	questions := make([]domain.Question, 0, count)
	generated := 0
	for i := 0; i < count; i++ {
		category := categories[i%len(categories)]
		if q := g.GenerateVerified(ctx, category); q != nil {
			questions = append(questions, *q)
			generated++
			continue
		}
		sub := g.bank.Sample([]domain.Category{category}, 1)
		questions = append(questions, sub...)
	}

	switch {
	case generated == count:
		return questions, domain.ProvenanceLLM
	case generated > 0:
		return questions, domain.ProvenanceMixed
	default:
		return questions, domain.ProvenanceFallback
	}
}
