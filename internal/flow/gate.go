package flow

import "go-interview-portal/internal/domain"

// SubmissionThreshold is the minimum overall completion percentage for a
// submission to be permitted.
const SubmissionThreshold = 80.0

// SectionCompletion reports answered versus required for one section.
type SectionCompletion struct {
	Answered int  `json:"answered"`
	Required int  `json:"required"`
	Complete bool `json:"complete"`
}

// Decision is the submission gate's verdict. A denial is not an error: the
// caller surfaces it as a UI message and nothing is persisted.
type Decision struct {
	Allowed    bool                                 `json:"allowed"`
	Completion float64                              `json:"completion"`
	Answered   int                                  `json:"answered"`
	Required   int                                  `json:"required"`
	Confirmed  bool                                 `json:"confirmed"`
	Sections   map[domain.Section]SectionCompletion `json:"sections"`
}

// EvaluateSubmission counts non-empty answers among the required question
// keys of each section and permits submission iff overall completion reaches
// the threshold AND the candidate checked the confirmation flag.
func EvaluateSubmission(answers domain.AnswerSet, confirmed bool) Decision {
	decision := Decision{
		Confirmed: confirmed,
		Sections:  make(map[domain.Section]SectionCompletion),
	}

	for _, section := range domain.ValidSections() {
		required := domain.RequiredQuestionKeys[section]
		answered := 0
		for _, key := range required {
			if v, ok := answers.Get(section, key); ok && !v.IsEmpty() {
				answered++
			}
		}
		decision.Sections[section] = SectionCompletion{
			Answered: answered,
			Required: len(required),
			Complete: answered == len(required),
		}
		decision.Answered += answered
		decision.Required += len(required)
	}

	if decision.Required > 0 {
		decision.Completion = float64(decision.Answered) / float64(decision.Required) * 100
	}
	decision.Allowed = decision.Completion >= SubmissionThreshold && confirmed

	return decision
}

// CompletedSectionsMap builds the per-section completeness map recorded on a
// permitted submission.
func (d Decision) CompletedSectionsMap() map[string]bool {
	sections := make(map[string]bool, len(d.Sections))
	for section, c := range d.Sections {
		sections[string(section)] = c.Complete
	}
	return sections
}
