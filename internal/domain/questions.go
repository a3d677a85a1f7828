package domain

// RequiredQuestionKeys lists the question keys that count toward submission
// completeness, per section. Free-form keys outside these lists are stored
// like any other answer but do not move the completion percentage.
var RequiredQuestionKeys = map[Section][]string{
	SectionGeneral: {
		"experience",
		"current_role",
		"education",
		"motivation",
		"strengths",
		"weaknesses",
		"availability",
		"salary_expectation",
		"relocation",
		"referral_source",
	},
	SectionTechnicalScenarios: {
		"scenario_outage",
		"scenario_debugging",
		"scenario_scaling",
		"scenario_security",
		"scenario_legacy",
	},
	SectionTechnicalExercises: {
		"exercise_algorithm",
		"exercise_api_design",
		"exercise_code_review",
		"exercise_sql",
		"exercise_testing",
	},
	SectionCulture: {
		"team_conflict",
		"feedback_style",
		"work_values",
	},
}

// RequiredCount returns the number of required questions in a section
func RequiredCount(section Section) int {
	return len(RequiredQuestionKeys[section])
}

// TotalRequiredCount returns the number of required questions across all sections
func TotalRequiredCount() int {
	total := 0
	for _, section := range ValidSections() {
		total += RequiredCount(section)
	}
	return total
}
