// Package steps defines the analysis stages, their categories and the
// dependencies that must complete before each one runs.
package steps

import (
	"fmt"
	"sort"
)

// Stage names
const (
	ParseResume = "parse_resume"
	AnalyzeJob  = "analyze_job"
	Keywords    = "extract_keywords"
	Match       = "match"
	Score       = "score"
	Recommend   = "recommend"
)

// Stage categories
const (
	CategoryParsing  = "parsing"
	CategoryAnalysis = "analysis"
	CategoryScoring  = "scoring"
)

// StepDefinition describes one stage of the analysis pipeline
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds every stage definition
var StepRegistry = map[string]StepDefinition{
	ParseResume: {
		Name:         ParseResume,
		Category:     CategoryParsing,
		Dependencies: []string{},
	},
	AnalyzeJob: {
		Name:         AnalyzeJob,
		Category:     CategoryParsing,
		Dependencies: []string{},
	},
	Keywords: {
		Name:         Keywords,
		Category:     CategoryAnalysis,
		Dependencies: []string{ParseResume, AnalyzeJob},
	},
	Match: {
		Name:         Match,
		Category:     CategoryAnalysis,
		Dependencies: []string{ParseResume, AnalyzeJob},
	},
	Score: {
		Name:         Score,
		Category:     CategoryScoring,
		Dependencies: []string{Match},
	},
	Recommend: {
		Name:         Recommend,
		Category:     CategoryScoring,
		Dependencies: []string{ParseResume, AnalyzeJob, Score},
	},
}

// DependencyError reports the dependencies of a step that have not completed
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// UnknownStepError is returned for a step name not in the registry
type UnknownStepError struct {
	Step string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step: %s", e.Step)
}

// Get returns the definition of a step.
func Get(name string) (StepDefinition, error) {
	def, ok := StepRegistry[name]
	if !ok {
		return StepDefinition{}, &UnknownStepError{Step: name}
	}
	return def, nil
}

// ValidateDependencies checks that every dependency of stepName is in completed.
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, err := Get(stepName)
	if err != nil {
		return err
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}

// AvailableSteps returns the steps not yet completed whose dependencies are met, sorted by name.
func AvailableSteps(completed map[string]bool) []string {
	var available []string
	for name := range StepRegistry {
		if completed[name] {
			continue
		}
		if ValidateDependencies(completed, name) == nil {
			available = append(available, name)
		}
	}
	sort.Strings(available)
	return available
}
