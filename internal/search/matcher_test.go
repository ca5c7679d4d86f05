package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessonbox/internal/catalog"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Design Systems", []string{"design", "systems"}},
		{"design-systems", []string{"design", "systems"}},
		{"UI/UX: basics (part 1)", []string{"ui", "ux", "basics", "part", "1"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Tokenize(tt.in), "input %q", tt.in)
	}

	assert.Empty(t, Tokenize("  "))
	assert.Empty(t, Tokenize(""))
}

func TestMatches_ShortQuerySemantics(t *testing.T) {
	// A two-letter query must equal a token, never match as a substring.
	assert.True(t, Matches("UI build", "ui"))
	assert.False(t, Matches("guide", "ui"))
	assert.True(t, Matches("Сетки в UI", "ui"))
}

func TestMatches_SubstringForLongerQueries(t *testing.T) {
	assert.True(t, Matches("design-systems", "design"))
	assert.True(t, Matches("Redesign tips", "design"))
	assert.False(t, Matches("Tilda basics", "design"))
}

func TestMatches_SanitizedFallback(t *testing.T) {
	// The tokenizer splits "A.B.Testing" apart, but the sanitized forms
	// "abtesting"/"abt" still line up.
	assert.True(t, Matches("A.B.Testing", "a.b.t"))
	// Sanitized fallback needs at least two meaningful runes.
	assert.False(t, Matches("guide", "u!"))
}

func TestMatches_EmptyQueryMatchesEverything(t *testing.T) {
	assert.True(t, Matches("anything", ""))
	assert.True(t, Matches("", "  "))
}

func lessonsFixture() []catalog.Lesson {
	return []catalog.Lesson{
		{ID: "1", Title: "Интро в Figma", Tags: []string{"plugins", "speed"}},
		{ID: "2", Title: "Design systems", Tags: []string{"ui"}},
		{ID: "3", Title: "Фриланс", Tags: []string{"работа"}},
	}
}

func TestFilter_TitleOrTag(t *testing.T) {
	lessons := lessonsFixture()

	t.Run("by title", func(t *testing.T) {
		got := Filter(lessons, "figma")
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("by tag", func(t *testing.T) {
		got := Filter(lessons, "plugins")
		require.Len(t, got, 1)
		assert.Equal(t, "1", got[0].ID)
	})

	t.Run("short query matches whole tag only", func(t *testing.T) {
		got := Filter(lessons, "ui")
		require.Len(t, got, 1)
		assert.Equal(t, "2", got[0].ID)
	})

	t.Run("cyrillic query", func(t *testing.T) {
		got := Filter(lessons, "работа")
		require.Len(t, got, 1)
		assert.Equal(t, "3", got[0].ID)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, Filter(lessons, "blender"))
	})
}

func TestFilter_EmptyQueryReturnsInputUnchanged(t *testing.T) {
	lessons := lessonsFixture()
	got := Filter(lessons, "   ")
	require.Len(t, got, len(lessons))
	for i := range lessons {
		assert.Equal(t, lessons[i].ID, got[i].ID)
	}
}

func TestFilterCategories(t *testing.T) {
	categories := []catalog.StaticCategory{
		{Title: "Инструменты Figma"},
		{Title: "Дизайн-системы"},
		{Title: "Tilda"},
	}

	got := FilterCategories(categories, "figma")
	require.Len(t, got, 1)
	assert.Equal(t, "Инструменты Figma", got[0].Title)

	assert.Len(t, FilterCategories(categories, ""), 3)
	assert.Empty(t, FilterCategories(categories, "blender"))
}
