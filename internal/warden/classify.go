package warden

import "strings"

// Category classifies a commit by its message marker.
type Category string

const (
	CategorySecurity Category = "SECURITY"
	CategoryFix      Category = "FIX"
	CategoryFeature  Category = "FEATURE"
	CategoryDocs     Category = "DOCS"
	CategoryRefactor Category = "REFACTOR"
	CategoryOther    Category = "OTHER"
)

// Categories returns all categories in report order.
func Categories() []Category {
	return []Category{
		CategorySecurity,
		CategoryFix,
		CategoryFeature,
		CategoryDocs,
		CategoryRefactor,
		CategoryOther,
	}
}

// Classify maps a commit subject to a category. It checks, in order, a
// bracketed marker ("[FIX] ..."), a conventional prefix ("FIX: ...",
// "fix(parser): ...", "fix!: ..."), then a loose whole-word keyword anywhere
// in the subject. Anything unmatched is OTHER. Matching is case-insensitive
// and purely textual, so a misleading subject lands in the wrong bucket; that
// is accepted rather than guessing intent.
func Classify(subject string) Category {
	s := strings.TrimSpace(subject)
	if s == "" {
		return CategoryOther
	}

	if strings.HasPrefix(s, "[") {
		if end := strings.Index(s, "]"); end > 1 {
			if cat, ok := lookupCategory(s[1:end]); ok {
				return cat
			}
		}
	}

	if head, _, found := strings.Cut(s, ":"); found {
		head = strings.TrimSpace(head)
		if idx := strings.Index(head, "("); idx >= 0 {
			head = head[:idx]
		}
		head = strings.TrimSuffix(head, "!")
		if cat, ok := lookupCategory(head); ok {
			return cat
		}
	}

	lower := strings.ToLower(s)
	for _, cat := range Categories() {
		if cat == CategoryOther {
			continue
		}
		if containsWord(lower, strings.ToLower(string(cat))) {
			return cat
		}
	}

	return CategoryOther
}

func lookupCategory(token string) (Category, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "SECURITY":
		return CategorySecurity, true
	case "FIX":
		return CategoryFix, true
	case "FEATURE":
		return CategoryFeature, true
	case "DOCS":
		return CategoryDocs, true
	case "REFACTOR":
		return CategoryRefactor, true
	}
	return "", false
}

// containsWord reports whether word occurs in s bounded by non-word
// characters, so "fix" matches "quick fix" but not "prefix".
func containsWord(s, word string) bool {
	for i := 0; i+len(word) <= len(s); i++ {
		if s[i:i+len(word)] != word {
			continue
		}
		if i > 0 && isWordChar(s[i-1]) {
			continue
		}
		if end := i + len(word); end < len(s) && isWordChar(s[end]) {
			continue
		}
		return true
	}
	return false
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
