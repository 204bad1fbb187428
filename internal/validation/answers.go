package validation

import (
	"fmt"
)

// AnswerKind tags how a quiz question's answer is shaped on the wire.
type AnswerKind int

const (
	// AnswerText is free-form text (text, email, textarea questions).
	AnswerText AnswerKind = iota
	// AnswerSingleSelect is one choice from a fixed option list.
	AnswerSingleSelect
	// AnswerMultiSelect is a set of choices (checkbox questions).
	AnswerMultiSelect
)

// questionKinds maps known question IDs to their answer shape. Unknown
// keys are accepted as long as they decode to a scalar or a string set;
// the quiz catalog grows without a server release.
var questionKinds = map[string]AnswerKind{
	"name":                      AnswerText,
	"email":                     AnswerText,
	"age":                       AnswerSingleSelect,
	"location":                  AnswerText,
	"occupation":                AnswerText,
	"hours_per_week":            AnswerSingleSelect,
	"preferred_schedule":        AnswerMultiSelect,
	"commitment_level":          AnswerSingleSelect,
	"ai_exposure":               AnswerSingleSelect,
	"tools_used":                AnswerMultiSelect,
	"ai_use_case":               AnswerText,
	"biggest_ai_barrier":        AnswerSingleSelect,
	"job_role":                  AnswerSingleSelect,
	"income_goal":               AnswerMultiSelect,
	"biggest_work_challenge":    AnswerText,
	"income_level":              AnswerSingleSelect,
	"desired_income":            AnswerText,
	"learning_style":            AnswerSingleSelect,
	"accountability_preference": AnswerMultiSelect,
	"success_metric":            AnswerText,
	"program_preference":        AnswerSingleSelect,
	"motivational_message":      AnswerText,
}

// requiredAnswers must be present and non-empty in every submission.
var requiredAnswers = []string{"name", "email"}

// ValidateAnswers checks a decoded quiz body against the tagged answer
// schema. Values arrive as JSON scalars or arrays; anything else is
// rejected at the boundary rather than carried into the store.
func ValidateAnswers(answers map[string]interface{}) error {
	if len(answers) == 0 {
		return &ValidationError{
			Field:   "answers",
			Message: "at least one answer is required",
		}
	}

	for key, value := range answers {
		kind, known := questionKinds[key]
		if !known {
			if err := checkLooseAnswer(key, value); err != nil {
				return err
			}
			continue
		}

		switch kind {
		case AnswerText, AnswerSingleSelect:
			s, ok := value.(string)
			if !ok {
				return &ValidationError{
					Field:   key,
					Message: "must be a string",
				}
			}
			if len(s) > 4096 {
				return &ValidationError{
					Field:   key,
					Message: "cannot exceed 4096 characters",
				}
			}
		case AnswerMultiSelect:
			if _, err := toStringSlice(key, value); err != nil {
				return err
			}
		}
	}

	for _, key := range requiredAnswers {
		s, _ := answers[key].(string)
		if SanitizeString(s) == "" {
			return &ValidationError{
				Field:   key,
				Message: "is required",
			}
		}
	}

	if err := ValidateEmail(StringAnswer(answers, "email")); err != nil {
		return err
	}

	return nil
}

func checkLooseAnswer(key string, value interface{}) error {
	switch v := value.(type) {
	case string, float64, bool, nil:
		return nil
	case []interface{}:
		_, err := toStringSlice(key, v)
		return err
	default:
		return &ValidationError{
			Field:   key,
			Message: fmt.Sprintf("unsupported answer type %T", value),
		}
	}
}

func toStringSlice(key string, value interface{}) ([]string, error) {
	items, ok := value.([]interface{})
	if !ok {
		return nil, &ValidationError{
			Field:   key,
			Message: "must be an array of strings",
		}
	}

	if len(items) > 50 {
		return nil, &ValidationError{
			Field:   key,
			Message: "cannot contain more than 50 selections",
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &ValidationError{
				Field:   key,
				Message: "must be an array of strings",
			}
		}
		out = append(out, SanitizeString(s))
	}
	return out, nil
}

// StringAnswer extracts a sanitized string answer; missing or mistyped
// answers read as "".
func StringAnswer(answers map[string]interface{}, key string) string {
	s, _ := answers[key].(string)
	return SanitizeString(s)
}

// StringSliceAnswer extracts a multi-select answer; missing or mistyped
// answers read as an empty set.
func StringSliceAnswer(answers map[string]interface{}, key string) []string {
	out, err := toStringSlice(key, answers[key])
	if err != nil {
		return nil
	}
	return out
}
