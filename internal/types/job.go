package types

// ExperienceLevel is the seniority a job asks for
type ExperienceLevel string

// Experience levels, in the order they are tested when analyzing a posting
const (
	LevelUnspecified ExperienceLevel = ""
	LevelEntry       ExperienceLevel = "entry"
	LevelMid         ExperienceLevel = "mid"
	LevelSenior      ExperienceLevel = "senior"
	LevelLead        ExperienceLevel = "lead"
)

// EducationLevel is a rung of the degree ladder
type EducationLevel string

// Education levels, lowest first
const (
	EducationUnspecified EducationLevel = ""
	EducationHighSchool  EducationLevel = "high_school"
	EducationAssociate   EducationLevel = "associate"
	EducationBachelor    EducationLevel = "bachelor"
	EducationMaster      EducationLevel = "master"
	EducationPhD         EducationLevel = "phd"
)

// educationRank maps degree levels to their position on the ladder
var educationRank = map[EducationLevel]int{
	EducationHighSchool: 1,
	EducationAssociate:  2,
	EducationBachelor:   3,
	EducationMaster:     4,
	EducationPhD:        5,
}

// Rank returns the ladder position of the level, 0 when unspecified.
func (l EducationLevel) Rank() int {
	return educationRank[l]
}

// Qualifications splits qualifications into required and preferred
type Qualifications struct {
	Required  []string `json:"required"`
	Preferred []string `json:"preferred"`
}

// ExperienceRequirement captures the experience a job asks for
type ExperienceRequirement struct {
	Years       int             `json:"years"`
	Level       ExperienceLevel `json:"level"`
	Description string          `json:"description"`
}

// EducationRequirement captures the education a job asks for
type EducationRequirement struct {
	Level  EducationLevel `json:"level"`
	Fields []string       `json:"fields"`
}

// JobRequirements is the structured record produced from a job posting
type JobRequirements struct {
	ID               string                `json:"id"`
	Title            string                `json:"title"`
	Company          string                `json:"company"`
	Location         string                `json:"location"`
	RequiredSkills   []string              `json:"required_skills"`
	PreferredSkills  []string              `json:"preferred_skills"`
	Responsibilities []string              `json:"responsibilities"`
	Qualifications   Qualifications        `json:"qualifications"`
	Experience       ExperienceRequirement `json:"experience"`
	Education        EducationRequirement  `json:"education"`
	Keywords         []string              `json:"keywords"`
	Sections         map[string]string     `json:"sections"`
	RawDescription   string                `json:"raw_description"`
	Timestamp        string                `json:"timestamp"` // RFC3339
}

// Normalize replaces nil slices and maps with empty ones.
func (j *JobRequirements) Normalize() {
	if j.RequiredSkills == nil {
		j.RequiredSkills = []string{}
	}
	if j.PreferredSkills == nil {
		j.PreferredSkills = []string{}
	}
	if j.Responsibilities == nil {
		j.Responsibilities = []string{}
	}
	if j.Qualifications.Required == nil {
		j.Qualifications.Required = []string{}
	}
	if j.Qualifications.Preferred == nil {
		j.Qualifications.Preferred = []string{}
	}
	if j.Education.Fields == nil {
		j.Education.Fields = []string{}
	}
	if j.Keywords == nil {
		j.Keywords = []string{}
	}
	if j.Sections == nil {
		j.Sections = map[string]string{}
	}
}

// IsRequiredSkill reports whether skill appears verbatim in the required list.
func (j JobRequirements) IsRequiredSkill(skill string) bool {
	for _, s := range j.RequiredSkills {
		if s == skill {
			return true
		}
	}
	return false
}

// AllSkills returns required then preferred skills with duplicates removed.
func (j JobRequirements) AllSkills() []string {
	seen := make(map[string]bool, len(j.RequiredSkills)+len(j.PreferredSkills))
	out := make([]string, 0, len(j.RequiredSkills)+len(j.PreferredSkills))
	for _, list := range [][]string{j.RequiredSkills, j.PreferredSkills} {
		for _, s := range list {
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
