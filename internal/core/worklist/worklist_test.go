package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		input   string
		want    Priority
		wantErr bool
	}{
		{"critical", PriorityCritical, false},
		{"high", PriorityHigh, false},
		{"medium", PriorityMedium, false},
		{"low", PriorityLow, false},
		{"urgent", "", true},
		{"", "", true},
		{"HIGH", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPriority_NominalHours(t *testing.T) {
	assert.Equal(t, 4.0, PriorityCritical.NominalHours())
	assert.Equal(t, 2.0, PriorityHigh.NominalHours())
	assert.Equal(t, 1.0, PriorityMedium.NominalHours())
	assert.Equal(t, 0.5, PriorityLow.NominalHours())
}

func TestDocument_Add(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		doc := NewDocument()
		require.NoError(t, doc.Add(Item{ID: "abc123", Description: "do a thing"}))

		item, ok := doc.Find("abc123")
		require.True(t, ok)
		assert.Equal(t, PriorityMedium, item.Priority)
		assert.Equal(t, StatusPending, item.Status)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		doc := NewDocument()
		require.NoError(t, doc.Add(Item{ID: "abc123", Description: "first"}))

		err := doc.Add(Item{ID: "abc123", Description: "second"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrDuplicateID)
	})

	t.Run("empty id rejected", func(t *testing.T) {
		doc := NewDocument()
		assert.Error(t, doc.Add(Item{Description: "no id"}))
	})
}

func TestDocument_SetStatus(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Add(Item{ID: "abc123", Description: "task"}))

	t.Run("transition", func(t *testing.T) {
		require.NoError(t, doc.SetStatus("abc123", StatusInProgress))
		item, _ := doc.Find("abc123")
		assert.Equal(t, StatusInProgress, item.Status)
	})

	t.Run("complete", func(t *testing.T) {
		require.NoError(t, doc.Complete("abc123"))
		item, _ := doc.Find("abc123")
		assert.Equal(t, StatusCompleted, item.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := doc.SetStatus("zzz", StatusCompleted)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestDocument_Counts(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Add(Item{ID: "a1", Description: "x", Status: StatusPending}))
	require.NoError(t, doc.Add(Item{ID: "a2", Description: "x", Status: StatusPending}))
	require.NoError(t, doc.Add(Item{ID: "a3", Description: "x", Status: StatusInProgress}))
	require.NoError(t, doc.Add(Item{ID: "a4", Description: "x", Status: StatusCompleted}))

	c := doc.Counts()
	assert.Equal(t, Counts{Total: 4, Completed: 1, InProgress: 1, Pending: 2}, c)
	assert.Equal(t, c.Total, c.Completed+c.InProgress+c.Pending)
}

func TestDocument_Pending(t *testing.T) {
	doc := NewDocument()
	require.NoError(t, doc.Add(Item{ID: "a1", Description: "x", Priority: PriorityHigh}))
	require.NoError(t, doc.Add(Item{ID: "a2", Description: "x", Priority: PriorityHigh, Status: StatusCompleted}))
	require.NoError(t, doc.Add(Item{ID: "a3", Description: "x", Priority: PriorityLow}))
	require.NoError(t, doc.Add(Item{ID: "a4", Description: "x", Priority: PriorityHigh}))

	pending := doc.Pending(PriorityHigh)
	require.Len(t, pending, 2)
	assert.Equal(t, "a1", pending[0].ID)
	assert.Equal(t, "a4", pending[1].ID)
}
