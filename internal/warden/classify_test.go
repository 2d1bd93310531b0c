package warden

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		subject string
		want    Category
	}{
		{"FIX: handle nil pointer in parser", CategoryFix},
		{"fix: handle nil pointer in parser", CategoryFix},
		{"fix(parser): handle empty input", CategoryFix},
		{"fix!: drop legacy flag", CategoryFix},
		{"[FIX] rate limiter off-by-one", CategoryFix},
		{"[fix] lowercase bracket tag", CategoryFix},
		{"SECURITY: plug path traversal in loader", CategorySecurity},
		{"security(api): rotate signing key", CategorySecurity},
		{"FEATURE: add retry budget", CategoryFeature},
		{"[DOCS] rewrite quickstart", CategoryDocs},
		{"docs: fix typo in README", CategoryDocs},
		{"REFACTOR: split store into reader/writer", CategoryRefactor},

		// Loose keyword matching on undecorated subjects.
		{"Fix flaky watcher test", CategoryFix},
		{"Refactor the session store", CategoryRefactor},
		{"add docs for the close flow", CategoryDocs},
		{"regenerate docs", CategoryDocs},

		// Keyword precedence follows category order, security first.
		{"fix security hole in uploader", CategorySecurity},

		// Keywords match whole words only.
		{"prefix all metric names", CategoryOther},
		{"use affixed labels", CategoryOther},

		{"misc tweak", CategoryOther},
		{"feat: not a recognized tag", CategoryOther},
		{"", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.subject, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.subject))
		})
	}
}

func TestCategories_Order(t *testing.T) {
	want := []Category{
		CategorySecurity,
		CategoryFix,
		CategoryFeature,
		CategoryDocs,
		CategoryRefactor,
		CategoryOther,
	}
	assert.Equal(t, want, Categories())
}
