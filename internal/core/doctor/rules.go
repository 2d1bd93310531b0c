package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/colonyops/warden/internal/core/config"
	"github.com/colonyops/warden/internal/core/policy"
)

// RulesCheck verifies that the rule file loads and every pattern compiles.
type RulesCheck struct {
	rulesFile string
}

// NewRulesCheck creates a new rules check.
func NewRulesCheck(rulesFile string) *RulesCheck {
	return &RulesCheck{rulesFile: rulesFile}
}

func (c *RulesCheck) Name() string {
	return "Rules"
}

func (c *RulesCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.rulesFile != "" {
		if _, err := os.Stat(c.rulesFile); os.IsNotExist(err) {
			result.Items = append(result.Items, CheckItem{
				Label:  c.rulesFile,
				Status: StatusWarn,
				Detail: "not found, using built-in defaults",
			})
		}
	}

	rules, err := config.LoadRules(c.rulesFile)
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "load",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	compiled, err := rules.Compile()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "compile",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	sets := []struct {
		label string
		set   *policy.RuleSet
	}{
		{"protected files", compiled.Protected},
		{"blocked commands", compiled.Blocked},
		{"caution commands", compiled.Caution},
	}
	for _, s := range sets {
		if s.set.Len() == 0 {
			result.Items = append(result.Items, CheckItem{
				Label:  s.label,
				Status: StatusWarn,
				Detail: "no patterns defined",
			})
			continue
		}
		result.Items = append(result.Items, CheckItem{
			Label:  s.label,
			Status: StatusPass,
			Detail: fmt.Sprintf("%d patterns", s.set.Len()),
		})
	}

	return result
}
