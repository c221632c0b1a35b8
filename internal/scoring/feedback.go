package scoring

import "github.com/jonathan/ats-optimizer/internal/types"

// Feedback bands, tested from the top down
const (
	excellentBand = 0.8
	goodBand      = 0.6
	averageBand   = 0.4
)

func summaryFeedback(relevance float64) string {
	switch {
	case relevance >= excellentBand:
		return "Excellent summary that effectively highlights your qualifications for the role."
	case relevance >= goodBand:
		return "Good summary, but could be more tailored to the specific job requirements."
	case relevance >= averageBand:
		return "Average summary that mentions some relevant qualifications but lacks specificity."
	default:
		return "Summary needs improvement. Consider adding more job-specific keywords and highlighting relevant qualifications."
	}
}

func experienceFeedback(relevance float64, m types.ExperienceMatch) string {
	var fb string
	if m.YearsMatch {
		fb += "Your years of experience meet the job requirements. "
	} else {
		fb += "Your resume may not clearly demonstrate the required years of experience. "
	}
	if m.LevelMatch {
		fb += "Your experience level aligns with the job requirements. "
	} else {
		fb += "Consider highlighting experience that better matches the required level. "
	}

	switch {
	case relevance >= excellentBand:
		fb += "Your experience descriptions effectively demonstrate relevant skills and achievements."
	case relevance >= goodBand:
		fb += "Your experience descriptions are good but could include more job-specific accomplishments."
	case relevance >= averageBand:
		fb += "Consider revising your experience descriptions to better highlight relevant skills and achievements."
	default:
		fb += "Your experience descriptions need significant improvement to demonstrate relevance to the job."
	}
	return fb
}

func educationFeedback(m types.EducationMatch) string {
	switch {
	case m.LevelMatch && m.FieldMatch:
		return "Your education credentials fully meet the job requirements."
	case m.LevelMatch:
		return "Your education level meets the requirements, but consider highlighting relevance to the required field of study."
	case m.FieldMatch:
		return "Your field of study is relevant, but your education level may not meet the requirements."
	default:
		return "Your education credentials may not meet the job requirements. Consider highlighting other relevant qualifications or certifications."
	}
}

func skillsFeedback(s types.SkillMatchResult) string {
	if len(s.Matched)+len(s.Missing) == 0 {
		return "No specific skills were identified for comparison."
	}
	frac := skillFraction(s)
	switch {
	case frac >= excellentBand:
		return "Excellent skills match. Your resume includes most of the required skills for this position."
	case frac >= goodBand:
		return "Good skills match. Consider adding some of the missing skills if you have them."
	case frac >= averageBand:
		return "Average skills match. Your resume is missing several key skills required for this position."
	default:
		return "Poor skills match. Your resume is missing many of the required skills for this position."
	}
}
