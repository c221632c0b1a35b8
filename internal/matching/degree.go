package matching

import (
	"strings"

	"github.com/jonathan/ats-optimizer/internal/dictionary"
	"github.com/jonathan/ats-optimizer/internal/textutil"
	"github.com/jonathan/ats-optimizer/internal/types"
)

// shortAliasLen is the length below which a degree alias must match as a whole word
const shortAliasLen = 4

// DegreeLevel places a degree string on the education ladder. Aliases are
// tested from the highest level down; a degree matching none is high_school.
func DegreeLevel(degree string, aliases []dictionary.DegreeAliases) types.EducationLevel {
	lower := strings.ToLower(degree)
	for _, group := range aliases {
		for _, alias := range group.Aliases {
			if aliasMatches(lower, strings.ToLower(alias)) {
				return types.EducationLevel(group.Level)
			}
		}
	}
	return types.EducationHighSchool
}

func aliasMatches(degree, alias string) bool {
	if alias == "" {
		return false
	}
	if len(alias) < shortAliasLen {
		return textutil.ContainsWord(degree, alias)
	}
	return strings.Contains(degree, alias)
}
