package questions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogShape(t *testing.T) {
	assert.Equal(t, 11, Count())

	for i, q := range All() {
		assert.Equal(t, i, q.ID, "ids follow catalog order")
		assert.NotEmpty(t, q.Text)
		assert.NotEmpty(t, q.Answers)
	}

	t.Run("scored questions carry a 1-5 scale", func(t *testing.T) {
		for id := 0; id < ScoredCount; id++ {
			q, ok := ByID(id)
			require.True(t, ok)
			require.Len(t, q.Answers, 5)
			assert.Equal(t, TypeSingleChoice, q.Type)
			for j, a := range q.Answers {
				assert.Equal(t, j, a.ID)
				assert.Equal(t, j+1, a.Score)
			}
		}
	})

	t.Run("demographics carry no scores", func(t *testing.T) {
		for id := ScoredCount; id < Count(); id++ {
			q, ok := ByID(id)
			require.True(t, ok)
			assert.Equal(t, TypeDemographics, q.Type)
			for _, a := range q.Answers {
				assert.Zero(t, a.Score)
			}
		}
	})
}

func TestByIDBounds(t *testing.T) {
	_, ok := ByID(-1)
	assert.False(t, ok)
	_, ok = ByID(Count())
	assert.False(t, ok)
	q, ok := ByID(0)
	require.True(t, ok)
	assert.Equal(t, 0, q.ID)
}

func TestAnswerScore(t *testing.T) {
	score, ok := AnswerScore(3, 2)
	require.True(t, ok)
	assert.Equal(t, 3, score)

	_, ok = AnswerScore(3, 99)
	assert.False(t, ok)
	_, ok = AnswerScore(42, 0)
	assert.False(t, ok)
}

func TestAnswerLabel(t *testing.T) {
	label, ok := AnswerLabel(AmbitionQuestionID, 4)
	require.True(t, ok)
	assert.Equal(t, "Become an AI-first organisation", label)

	_, ok = AnswerLabel(AmbitionQuestionID, 5)
	assert.False(t, ok)
}

func TestCategories(t *testing.T) {
	// every scored question belongs to exactly one category
	seen := map[int]string{}
	for _, c := range Categories {
		for _, id := range c.QuestionIDs {
			_, dup := seen[id]
			require.False(t, dup, "question %d in two categories", id)
			seen[id] = c.Name
		}
	}
	assert.Len(t, seen, ScoredCount)

	cat, ok := CategoryOf(4)
	require.True(t, ok)
	assert.Equal(t, CategoryApplication, cat.Name)

	_, ok = CategoryOf(9)
	assert.False(t, ok)
}

func TestIsScored(t *testing.T) {
	assert.True(t, IsScored(0))
	assert.True(t, IsScored(8))
	assert.False(t, IsScored(9))
	assert.False(t, IsScored(-1))
}
