package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Section is one of the four fixed question groups of the interview.
type Section string

const (
	SectionGeneral            Section = "general"
	SectionTechnicalScenarios Section = "technical_scenarios"
	SectionTechnicalExercises Section = "technical_exercises"
	SectionCulture            Section = "culture"
)

// ValidSections returns all valid sections in wizard order
func ValidSections() []Section {
	return []Section{SectionGeneral, SectionTechnicalScenarios, SectionTechnicalExercises, SectionCulture}
}

// IsValid checks if the section is part of the closed set
func (s Section) IsValid() bool {
	for _, valid := range ValidSections() {
		if s == valid {
			return true
		}
	}
	return false
}

// AnswerValueKind tags the two representations an answer payload can take.
type AnswerValueKind string

const (
	AnswerPlain      AnswerValueKind = "plain"
	AnswerStructured AnswerValueKind = "structured"
)

// AnswerValue is a tagged union: either a plain string or an arbitrary
// structured payload (file metadata, nested sub-answers). The tag rides along
// in the JSON envelope so loading restores exactly what was saved.
type AnswerValue struct {
	Kind AnswerValueKind
	Text string
	Data json.RawMessage
}

func PlainAnswer(text string) AnswerValue {
	return AnswerValue{Kind: AnswerPlain, Text: text}
}

func StructuredAnswer(data json.RawMessage) AnswerValue {
	return AnswerValue{Kind: AnswerStructured, Data: data}
}

// IsEmpty reports whether the value carries no usable content. Plain values
// are empty when only-whitespace; structured values are always accepted.
func (v AnswerValue) IsEmpty() bool {
	switch v.Kind {
	case AnswerPlain:
		return strings.TrimSpace(v.Text) == ""
	case AnswerStructured:
		return len(v.Data) == 0 || string(v.Data) == "null"
	}
	return true
}

type answerValueEnvelope struct {
	Kind AnswerValueKind `json:"kind"`
	Text *string         `json:"text,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`
}

func (v AnswerValue) MarshalJSON() ([]byte, error) {
	env := answerValueEnvelope{Kind: v.Kind}
	switch v.Kind {
	case AnswerPlain:
		text := v.Text
		env.Text = &text
	case AnswerStructured:
		env.Data = v.Data
	default:
		return nil, fmt.Errorf("unknown answer value kind: %q", v.Kind)
	}
	return json.Marshal(env)
}

func (v *AnswerValue) UnmarshalJSON(raw []byte) error {
	var env answerValueEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	switch env.Kind {
	case AnswerPlain:
		if env.Text == nil {
			return fmt.Errorf("plain answer value missing text")
		}
		*v = PlainAnswer(*env.Text)
	case AnswerStructured:
		*v = StructuredAnswer(env.Data)
	default:
		return fmt.Errorf("unknown answer value kind: %q", env.Kind)
	}
	return nil
}

// Answer is one persisted response tuple. At most one live value exists per
// (identifier, section, question key); writes are last-write-wins upserts.
type Answer struct {
	IdentifierKey string      `json:"-"`
	Section       Section     `json:"section"`
	QuestionKey   string      `json:"question_key"`
	Value         AnswerValue `json:"value"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// AnswerSet is the loaded shape: section -> question key -> value.
type AnswerSet map[Section]map[string]AnswerValue

// Get returns the stored value for (section, key) if present.
func (s AnswerSet) Get(section Section, key string) (AnswerValue, bool) {
	byKey, ok := s[section]
	if !ok {
		return AnswerValue{}, false
	}
	v, ok := byKey[key]
	return v, ok
}

// Put stores a value, allocating the inner map on first use.
func (s AnswerSet) Put(section Section, key string, value AnswerValue) {
	if s[section] == nil {
		s[section] = make(map[string]AnswerValue)
	}
	s[section][key] = value
}

type AnswerRepository interface {
	Save(ctx context.Context, id Identifier, section Section, questionKey string, value AnswerValue) error
	ListByIdentifier(ctx context.Context, id Identifier) ([]Answer, error)
	ListAll(ctx context.Context) ([]Answer, error)
	DeleteByIdentifier(ctx context.Context, id Identifier) error
}

type AnswerUsecase interface {
	SaveAnswer(ctx context.Context, id Identifier, section Section, questionKey string, value AnswerValue) error
	LoadAnswers(ctx context.Context, id Identifier) (AnswerSet, error)
}
