// Package search implements the free-text matcher used to filter lessons
// and category menus. The rules are deliberate: one- and two-letter queries
// match whole tokens only, longer queries match token substrings, and a
// sanitized comparison catches matches the tokenizer loses to punctuation.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"lessonbox/internal/catalog"
)

const punctuation = `.,!?:;"'()[]{}<>/\-`

// Tokenize lowercases text and splits it on whitespace and the fixed
// punctuation set, dropping empty tokens.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(punctuation, r)
	})
}

// sanitize strips everything but letters and digits, lowercased.
func sanitize(text string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// query is a prepared search term shared across candidates.
type query struct {
	term         string
	sanitized    string
	short        bool // short queries match tokens exactly, never as substrings
	hasSanitized bool
}

func prepare(raw string) query {
	term := strings.ToLower(strings.TrimSpace(raw))
	sanitized := sanitize(term)
	short := utf8.RuneCountInString(term) <= 2
	return query{
		term:      term,
		sanitized: sanitized,
		short:     short,
		// The fallback never applies to short queries: a two-letter query
		// would otherwise sneak back in as a substring match.
		hasSanitized: !short && utf8.RuneCountInString(sanitized) >= 2,
	}
}

func (q query) matchesToken(token string) bool {
	if q.short {
		return token == q.term
	}
	return strings.Contains(token, q.term)
}

func (q query) matchesText(text string) bool {
	if text == "" {
		return false
	}
	for _, token := range Tokenize(text) {
		if q.matchesToken(token) {
			return true
		}
	}
	return q.hasSanitized && strings.Contains(sanitize(text), q.sanitized)
}

// matchesTags checks each tag as a whole; tags are already lowercased and
// trimmed by normalization.
func (q query) matchesTags(tags []string) bool {
	for _, tag := range tags {
		if q.matchesToken(tag) {
			return true
		}
		if q.hasSanitized && strings.Contains(sanitize(tag), q.sanitized) {
			return true
		}
	}
	return false
}

// Matches reports whether a single text field satisfies the query rules.
func Matches(text, rawQuery string) bool {
	q := prepare(rawQuery)
	if q.term == "" {
		return true
	}
	return q.matchesText(text)
}

// Filter returns the lessons whose title or any tag matches the query. An
// empty query returns the input unchanged, order preserved.
func Filter(lessons []catalog.Lesson, rawQuery string) []catalog.Lesson {
	q := prepare(rawQuery)
	if q.term == "" {
		return lessons
	}

	var out []catalog.Lesson
	for _, lesson := range lessons {
		if q.matchesText(lesson.Title) || q.matchesTags(lesson.Tags) {
			out = append(out, lesson)
		}
	}
	return out
}

// FilterCategories is the title-only variant used for the category menu; a
// plain case-insensitive substring is intuitive there because titles are
// short and curated.
func FilterCategories(categories []catalog.StaticCategory, rawQuery string) []catalog.StaticCategory {
	term := strings.ToLower(strings.TrimSpace(rawQuery))
	if term == "" {
		return categories
	}

	var out []catalog.StaticCategory
	for _, category := range categories {
		if strings.Contains(strings.ToLower(category.Title), term) {
			out = append(out, category)
		}
	}
	return out
}
