package doctor

import (
	"context"
	"fmt"
	"os"
)

// DataDirsCheck verifies that the data and archive directories are usable.
type DataDirsCheck struct {
	dirs    []string
	autofix bool
}

// NewDataDirsCheck creates a new data directories check. With autofix set,
// missing directories are created instead of reported.
func NewDataDirsCheck(dirs []string, autofix bool) *DataDirsCheck {
	return &DataDirsCheck{dirs: dirs, autofix: autofix}
}

func (c *DataDirsCheck) Name() string {
	return "Data Directories"
}

func (c *DataDirsCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, dir := range c.dirs {
		info, err := os.Stat(dir)
		switch {
		case os.IsNotExist(err):
			result.Items = append(result.Items, c.missing(dir))
		case err != nil:
			result.Items = append(result.Items, CheckItem{
				Label:  dir,
				Status: StatusFail,
				Detail: fmt.Sprintf("inaccessible: %v", err),
			})
		case !info.IsDir():
			result.Items = append(result.Items, CheckItem{
				Label:  dir,
				Status: StatusFail,
				Detail: "path is not a directory",
			})
		default:
			result.Items = append(result.Items, CheckItem{
				Label:  dir,
				Status: StatusPass,
			})
		}
	}

	return result
}

func (c *DataDirsCheck) missing(dir string) CheckItem {
	if !c.autofix {
		return CheckItem{
			Label:   dir,
			Status:  StatusWarn,
			Detail:  "directory does not exist",
			Fixable: true,
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckItem{
			Label:  dir,
			Status: StatusFail,
			Detail: fmt.Sprintf("create failed: %v", err),
		}
	}

	return CheckItem{
		Label:  dir,
		Status: StatusPass,
		Detail: "created",
	}
}
