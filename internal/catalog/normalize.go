package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Normalizer turns raw provider payloads into canonical per-category lesson
// collections. It owns the fallback ID counter, so two Normalizer instances
// never interfere and tests stay isolated.
type Normalizer struct {
	icons  map[string]string
	nextID int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{icons: categoryIcons()}
}

// Normalize accepts either a flat list of records (each bucketed by its own
// "category" field) or a map of category title to record list. Anything
// else yields an empty snapshot.
func (n *Normalizer) Normalize(raw any) Snapshot {
	buckets, order := bucketize(raw)
	result := make(Snapshot)

	for _, rawCategoryTitle := range order {
		primaryCategoryTitle := strings.TrimSpace(rawCategoryTitle)

		for _, record := range buckets[rawCategoryTitle] {
			n.fanOut(result, record, primaryCategoryTitle)
		}
	}

	// Last-declared source records surface first: the provider appends
	// chronologically and the UI shows newest on top.
	for categoryTitle, lessons := range result {
		reversed := make([]Lesson, len(lessons))
		for i, lesson := range lessons {
			reversed[len(lessons)-1-i] = lesson
		}
		result[categoryTitle] = reversed
	}

	return result
}

// fanOut emits up to three copies of one record: its primary category, an
// optional secondary category, and the reserved new-lessons category. A
// fan-out target equal to an already used category is skipped, so no
// category ever holds two copies of the same record.
func (n *Normalizer) fanOut(result Snapshot, record map[string]any, primaryCategoryTitle string) {
	baseID := n.deriveID(record)
	tags := parseTags(record["tags"])
	title, _ := record["title"].(string)

	extra := make(map[string]any, len(record))
	for k, v := range record {
		if !canonicalKeys[k] {
			extra[k] = v
		}
	}

	base := Lesson{
		BaseID:               baseID,
		Title:                title,
		PrimaryCategoryTitle: primaryCategoryTitle,
		Tags:                 tags,
		Extra:                extra,
	}

	used := make(map[string]bool, 3)

	file := func(categoryTitle, id string, primary bool) {
		if categoryTitle == "" || used[categoryTitle] {
			return
		}
		used[categoryTitle] = true

		filed := base
		filed.ID = id
		filed.CategoryTitle = categoryTitle
		filed.IsPrimaryCategory = primary
		filed.IconKey = n.resolveIcon(record, categoryTitle)
		result[categoryTitle] = append(result[categoryTitle], filed)
	}

	file(primaryCategoryTitle, baseID+"__"+primaryCategoryTitle, true)

	if secondCategory := trimmedString(record["secondCategory"]); secondCategory != "" {
		file(secondCategory, baseID+"__"+secondCategory, false)
	}

	if isYes(record["new"]) {
		file(NewLessonsCategory, baseID+"__new", false)
	}
}

// deriveID picks a stable identity for a record: explicit lesson_id, then
// id/_id, then the link field, then a process-local counter.
func (n *Normalizer) deriveID(record map[string]any) string {
	if id := stringify(record["lesson_id"]); id != "" {
		return id
	}
	if id := stringify(record["id"]); id != "" {
		return id
	}
	if id := stringify(record["_id"]); id != "" {
		return id
	}
	for _, field := range linkFields {
		if id := stringify(record[field]); id != "" {
			return id
		}
	}
	n.nextID++
	return fmt.Sprintf("lesson-%d", n.nextID)
}

func (n *Normalizer) resolveIcon(record map[string]any, categoryTitle string) string {
	if iconKey, ok := record["iconKey"].(string); ok && iconKey != "" {
		return iconKey
	}
	return n.icons[categoryTitle]
}

// bucketize performs the shape detection of the raw payload. It returns the
// buckets plus a deterministic category order: declaration order for list
// input, sorted titles for map input (JSON object order is not observable
// after decoding).
func bucketize(raw any) (map[string][]map[string]any, []string) {
	buckets := make(map[string][]map[string]any)
	var order []string

	switch payload := raw.(type) {
	case []any:
		for _, item := range payload {
			record, ok := item.(map[string]any)
			if !ok {
				continue
			}
			categoryTitle := trimmedString(record["category"])
			if categoryTitle == "" {
				// Records without a category are dropped here; they have no
				// bucket to live in.
				continue
			}
			if _, seen := buckets[categoryTitle]; !seen {
				order = append(order, categoryTitle)
			}
			buckets[categoryTitle] = append(buckets[categoryTitle], record)
		}

	case map[string]any:
		for categoryTitle, value := range payload {
			list, ok := value.([]any)
			if !ok {
				continue
			}
			var records []map[string]any
			for _, item := range list {
				if record, ok := item.(map[string]any); ok {
					records = append(records, record)
				}
			}
			buckets[categoryTitle] = records
			order = append(order, categoryTitle)
		}
		sort.Strings(order)
	}

	return buckets, order
}

// parseTags accepts a list or a comma-separated string; each tag is
// trimmed, lowercased, and dropped when empty. The result is idempotent:
// feeding it back in returns the same list.
func parseTags(value any) []string {
	var parts []string
	switch v := value.(type) {
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	case []string:
		parts = v
	case string:
		parts = strings.Split(v, ",")
	default:
		return []string{}
	}

	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// isYes interprets the provider's loosely typed "new" flag: booleans pass
// through, numbers must equal 1, strings must read "yes" or "true".
func isYes(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case float64:
		return v == 1
	case int:
		return v == 1
	case string:
		normalized := strings.ToLower(strings.TrimSpace(v))
		return normalized == "yes" || normalized == "true"
	}
	return false
}

func trimmedString(value any) string {
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

// stringify renders identity-bearing values as strings. Numbers are
// accepted because providers are sloppy about ID types; zero and empty
// values count as absent.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == 0 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v == 0 {
			return ""
		}
		return strconv.Itoa(v)
	}
	return ""
}
