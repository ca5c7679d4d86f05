package catalog

import (
	"encoding/json"
	"time"
)

// Lesson is the canonical, fan-out-expanded content unit. One source record
// can yield several Lesson copies, each filed under a different category;
// they share BaseID while ID is unique per (BaseID, category) pair.
type Lesson struct {
	ID                   string
	BaseID               string
	Title                string
	CategoryTitle        string
	PrimaryCategoryTitle string
	IsPrimaryCategory    bool
	Tags                 []string
	IconKey              string

	// Extra carries every raw provider field that does not map onto a
	// canonical attribute, so link fields and provider extras survive
	// normalization and cache round trips untouched.
	Extra map[string]any
}

// canonicalKeys are the raw-record keys absorbed into Lesson fields; they
// are stripped from Extra to avoid drifting duplicates.
var canonicalKeys = map[string]bool{
	"id":                   true,
	"baseId":               true,
	"lesson_id":            true,
	"title":                true,
	"categoryTitle":        true,
	"primaryCategoryTitle": true,
	"isPrimaryCategory":    true,
	"tags":                 true,
	"iconKey":              true,
}

// linkFields are checked in order when resolving a lesson's outbound link.
var linkFields = []string{"url", "link", "href", "telegramLink"}

// URL returns the lesson's outbound link, or "" if the record carries none.
func (l Lesson) URL() string {
	for _, field := range linkFields {
		if s, ok := l.Extra[field].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// MarshalJSON flattens the canonical fields and Extra into one object,
// mirroring the wire shape the provider uses.
func (l Lesson) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(l.Extra)+len(canonicalKeys))
	for k, v := range l.Extra {
		out[k] = v
	}
	out["id"] = l.ID
	out["baseId"] = l.BaseID
	out["lesson_id"] = l.BaseID
	out["title"] = l.Title
	out["categoryTitle"] = l.CategoryTitle
	out["primaryCategoryTitle"] = l.PrimaryCategoryTitle
	out["isPrimaryCategory"] = l.IsPrimaryCategory
	tags := l.Tags
	if tags == nil {
		tags = []string{}
	}
	out["tags"] = tags
	if l.IconKey != "" {
		out["iconKey"] = l.IconKey
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: known keys populate the
// canonical fields, everything else lands in Extra.
func (l *Lesson) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	l.ID = stringAt(raw, "id")
	l.BaseID = stringAt(raw, "baseId")
	if l.BaseID == "" {
		l.BaseID = stringAt(raw, "lesson_id")
	}
	l.Title = stringAt(raw, "title")
	l.CategoryTitle = stringAt(raw, "categoryTitle")
	l.PrimaryCategoryTitle = stringAt(raw, "primaryCategoryTitle")
	l.IsPrimaryCategory, _ = raw["isPrimaryCategory"].(bool)
	l.IconKey = stringAt(raw, "iconKey")

	l.Tags = []string{}
	if list, ok := raw["tags"].([]any); ok {
		for _, v := range list {
			if s, ok := v.(string); ok {
				l.Tags = append(l.Tags, s)
			}
		}
	}

	l.Extra = make(map[string]any)
	for k, v := range raw {
		if !canonicalKeys[k] {
			l.Extra[k] = v
		}
	}
	return nil
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// Snapshot maps category titles to their lessons, most recently declared
// source records first.
type Snapshot map[string][]Lesson

// CacheEntry is one normalized snapshot plus the bookkeeping the freshness
// policy needs. Field names match the original wire format so existing
// cached payloads stay readable.
type CacheEntry struct {
	Lessons   Snapshot  `json:"lessonsByCategory"`
	CreatedAt time.Time `json:"timestamp"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// StaticCategory is one entry of the hand-authored category menu.
type StaticCategory struct {
	Title   string `json:"title"`
	IconKey string `json:"iconKey"`
}
