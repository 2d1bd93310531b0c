package worklist

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Document {
	return &Document{
		Title:   "Worklist",
		Updated: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Items: []Item{
			{ID: "cr1aaa", Description: "rotate leaked credentials", Priority: PriorityCritical, Status: StatusInProgress},
			{ID: "hi1bbb", Description: "fix flaky auth test", Priority: PriorityHigh, Status: StatusPending},
			{ID: "me1ccc", Description: "add retry to fetcher", Priority: PriorityMedium, Status: StatusPending},
			{ID: "me2ddd", Description: "document the close flow", Priority: PriorityMedium, Status: StatusCompleted},
			{ID: "lo1eee", Description: "tidy readme", Priority: PriorityLow, Status: StatusPending},
		},
	}
}

func TestRender(t *testing.T) {
	out := Render(sampleDocument())

	t.Run("title and metadata", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(out, "# Worklist\n"))
		assert.Contains(t, out, "Updated: 2026-03-01T10:00:00Z")
		assert.Contains(t, out, "Counts: total=5 completed=1 in-progress=1 pending=3")
	})

	t.Run("tier sections in order", func(t *testing.T) {
		iCrit := strings.Index(out, "## Critical")
		iHigh := strings.Index(out, "## High")
		iMed := strings.Index(out, "## Medium")
		iLow := strings.Index(out, "## Low")
		require.True(t, iCrit >= 0 && iHigh >= 0 && iMed >= 0 && iLow >= 0)
		assert.True(t, iCrit < iHigh && iHigh < iMed && iMed < iLow)
	})

	t.Run("status markers", func(t *testing.T) {
		assert.Contains(t, out, "- [~] cr1aaa: rotate leaked credentials")
		assert.Contains(t, out, "- [ ] hi1bbb: fix flaky auth test")
		assert.Contains(t, out, "- [x] me2ddd: document the close flow")
	})

	t.Run("empty tiers omitted", func(t *testing.T) {
		doc := NewDocument()
		require.NoError(t, doc.Add(Item{ID: "a1", Description: "only item", Priority: PriorityLow}))

		rendered := Render(doc)
		assert.Contains(t, rendered, "## Low")
		assert.NotContains(t, rendered, "## Critical")
		assert.NotContains(t, rendered, "## Medium")
	})

	t.Run("zero updated omits line", func(t *testing.T) {
		rendered := Render(NewDocument())
		assert.NotContains(t, rendered, "Updated:")
		assert.Contains(t, rendered, "Counts: total=0 completed=0 in-progress=0 pending=0")
	})
}

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		content := `# Worklist

Updated: 2026-03-01T10:00:00Z
Counts: total=3 completed=1 in-progress=0 pending=2

## Critical

- [ ] cr1aaa: rotate leaked credentials

## Medium

- [ ] me1ccc: add retry to fetcher
- [x] me2ddd: document the close flow
`
		doc, err := Parse(content)
		require.NoError(t, err)

		assert.Equal(t, "Worklist", doc.Title)
		assert.Equal(t, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), doc.Updated.UTC())
		require.Len(t, doc.Items, 3)

		assert.Equal(t, Item{ID: "cr1aaa", Description: "rotate leaked credentials", Priority: PriorityCritical, Status: StatusPending}, doc.Items[0])
		assert.Equal(t, PriorityMedium, doc.Items[1].Priority)
		assert.Equal(t, StatusCompleted, doc.Items[2].Status)
	})

	t.Run("empty content", func(t *testing.T) {
		doc, err := Parse("")
		require.NoError(t, err)
		assert.Equal(t, "Worklist", doc.Title)
		assert.Empty(t, doc.Items)
	})

	t.Run("duplicate ids rejected", func(t *testing.T) {
		content := "# Worklist\n\n## Medium\n\n- [ ] abc: one\n- [ ] abc: two\n"
		_, err := Parse(content)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("malformed item line rejected", func(t *testing.T) {
		_, err := Parse("## Medium\n\n- [ ] no separator here\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing id")
	})

	t.Run("unknown status marker rejected", func(t *testing.T) {
		_, err := Parse("## Medium\n\n- [?] abc: task\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown status marker")
	})

	t.Run("items under foreign heading keep medium", func(t *testing.T) {
		content := "# Worklist\n\n## Notes\n\n- [ ] abc: stray task\n"
		doc, err := Parse(content)
		require.NoError(t, err)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, PriorityMedium, doc.Items[0].Priority)
	})

	t.Run("malformed updated tolerated", func(t *testing.T) {
		doc, err := Parse("# Worklist\n\nUpdated: yesterday\n")
		require.NoError(t, err)
		assert.True(t, doc.Updated.IsZero())
	})

	t.Run("uppercase completion marker", func(t *testing.T) {
		doc, err := Parse("## Low\n\n- [X] abc: done task\n")
		require.NoError(t, err)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, StatusCompleted, doc.Items[0].Status)
	})

	t.Run("description with colon survives", func(t *testing.T) {
		doc, err := Parse("## Medium\n\n- [ ] abc: fix: the parser\n")
		require.NoError(t, err)
		require.Len(t, doc.Items, 1)
		assert.Equal(t, "fix: the parser", doc.Items[0].Description)
	})
}

func TestRoundTrip(t *testing.T) {
	original := sampleDocument()

	parsed, err := Parse(Render(original))
	require.NoError(t, err)

	assert.Equal(t, original.Title, parsed.Title)
	assert.True(t, parsed.Updated.Equal(original.Updated))
	assert.Equal(t, original.Counts(), parsed.Counts())
	assert.ElementsMatch(t, original.Items, parsed.Items)

	t.Run("second pass is stable", func(t *testing.T) {
		again, err := Parse(Render(parsed))
		require.NoError(t, err)
		assert.Equal(t, parsed.Items, again.Items)
		assert.Equal(t, Render(parsed), Render(again))
	})
}
