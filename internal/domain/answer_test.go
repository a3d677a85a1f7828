package domain_test

import (
	"encoding/json"
	"testing"

	"go-interview-portal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnswerValueRoundTrip(t *testing.T) {
	t.Run("Should restore a plain value exactly", func(t *testing.T) {
		original := domain.PlainAnswer("ten years of Go, mostly backend")

		raw, err := json.Marshal(original)
		require.NoError(t, err)

		var restored domain.AnswerValue
		require.NoError(t, json.Unmarshal(raw, &restored))
		assert.Equal(t, original, restored)
	})

	t.Run("Should restore a structured value with its kind tag", func(t *testing.T) {
		original := domain.StructuredAnswer(json.RawMessage(`{"files":[{"name":"cv.pdf","size":10240}],"note":"latest"}`))

		raw, err := json.Marshal(original)
		require.NoError(t, err)

		var restored domain.AnswerValue
		require.NoError(t, json.Unmarshal(raw, &restored))
		assert.Equal(t, domain.AnswerStructured, restored.Kind)
		assert.JSONEq(t, string(original.Data), string(restored.Data))
	})

	t.Run("Should preserve a plain value that looks structured", func(t *testing.T) {
		// A candidate pasting JSON into a text box stays a plain string
		original := domain.PlainAnswer(`{"trick":"value"}`)

		raw, err := json.Marshal(original)
		require.NoError(t, err)

		var restored domain.AnswerValue
		require.NoError(t, json.Unmarshal(raw, &restored))
		assert.Equal(t, domain.AnswerPlain, restored.Kind)
		assert.Equal(t, `{"trick":"value"}`, restored.Text)
	})

	t.Run("Should reject an envelope with unknown kind", func(t *testing.T) {
		var v domain.AnswerValue
		err := json.Unmarshal([]byte(`{"kind":"binary","text":"x"}`), &v)
		assert.Error(t, err)
	})
}

func TestAnswerValueIsEmpty(t *testing.T) {
	assert.True(t, domain.PlainAnswer("").IsEmpty())
	assert.True(t, domain.PlainAnswer(" \t\n ").IsEmpty())
	assert.False(t, domain.PlainAnswer("x").IsEmpty())
	assert.True(t, domain.StructuredAnswer(nil).IsEmpty())
	assert.True(t, domain.StructuredAnswer(json.RawMessage(`null`)).IsEmpty())
	assert.False(t, domain.StructuredAnswer(json.RawMessage(`{}`)).IsEmpty())
}

func TestSectionValidity(t *testing.T) {
	for _, section := range domain.ValidSections() {
		assert.True(t, section.IsValid())
	}
	assert.False(t, domain.Section("hobbies").IsValid())
	assert.False(t, domain.Section("").IsValid())
}

func TestRequiredQuestionCounts(t *testing.T) {
	assert.Equal(t, 10, domain.RequiredCount(domain.SectionGeneral))
	assert.Equal(t, 5, domain.RequiredCount(domain.SectionTechnicalScenarios))
	assert.Equal(t, 5, domain.RequiredCount(domain.SectionTechnicalExercises))
	assert.Equal(t, 3, domain.RequiredCount(domain.SectionCulture))
	assert.Equal(t, 23, domain.TotalRequiredCount())
}
