package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/warden/internal/core/worklist"
)

// WorklistCheck verifies that the worklist document parses.
type WorklistCheck struct {
	path string
}

// NewWorklistCheck creates a new worklist check.
func NewWorklistCheck(path string) *WorklistCheck {
	return &WorklistCheck{path: path}
}

func (c *WorklistCheck) Name() string {
	return "Worklist"
}

func (c *WorklistCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusPass,
			Detail: "will be created on first close",
		})
		return result
	}

	doc, err := worklist.NewFileStore(c.path).Load()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  c.path,
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	counts := doc.Counts()
	result.Items = append(result.Items, CheckItem{
		Label:  c.path,
		Status: StatusPass,
		Detail: fmt.Sprintf("%d items (%d pending, %d in progress)", counts.Total, counts.Pending, counts.InProgress),
	})

	return result
}
