package validation

import "testing"

func validAnswers() map[string]interface{} {
	return map[string]interface{}{
		"name":           "Alex Rivera",
		"email":          "alex@example.com",
		"hours_per_week": "10-15 hours",
		"ai_exposure":    "Heard about it",
		"tools_used":     []interface{}{"ChatGPT", "Midjourney"},
	}
}

func TestValidateAnswers_Valid(t *testing.T) {
	if err := ValidateAnswers(validAnswers()); err != nil {
		t.Errorf("Expected valid answers to pass, got %v", err)
	}
}

func TestValidateAnswers_Empty(t *testing.T) {
	if err := ValidateAnswers(map[string]interface{}{}); err == nil {
		t.Error("Expected empty body to fail")
	}
}

func TestValidateAnswers_RequiredFields(t *testing.T) {
	for _, field := range []string{"name", "email"} {
		answers := validAnswers()
		delete(answers, field)
		if err := ValidateAnswers(answers); err == nil {
			t.Errorf("Expected missing %s to fail", field)
		}

		answers = validAnswers()
		answers[field] = "   "
		if err := ValidateAnswers(answers); err == nil {
			t.Errorf("Expected blank %s to fail", field)
		}
	}
}

func TestValidateAnswers_BadEmail(t *testing.T) {
	answers := validAnswers()
	answers["email"] = "not-an-email"
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected malformed email to fail")
	}
}

func TestValidateAnswers_WrongShape(t *testing.T) {
	answers := validAnswers()
	answers["hours_per_week"] = 12.5
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected non-string single select to fail")
	}

	answers = validAnswers()
	answers["tools_used"] = "ChatGPT"
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected non-array multi select to fail")
	}

	answers = validAnswers()
	answers["tools_used"] = []interface{}{"ChatGPT", 42}
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected mixed-type multi select to fail")
	}
}

func TestValidateAnswers_UnknownKeysAreLoose(t *testing.T) {
	answers := validAnswers()
	answers["new_question"] = "free text"
	answers["new_rating"] = 4.0
	answers["new_flags"] = []interface{}{"a", "b"}
	if err := ValidateAnswers(answers); err != nil {
		t.Errorf("Expected unknown scalar answers to pass, got %v", err)
	}

	answers["new_blob"] = map[string]interface{}{"nested": true}
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected nested object answer to fail")
	}
}

func TestValidateAnswers_SelectionCap(t *testing.T) {
	items := make([]interface{}, 51)
	for i := range items {
		items[i] = "tool"
	}

	answers := validAnswers()
	answers["tools_used"] = items
	if err := ValidateAnswers(answers); err == nil {
		t.Error("Expected more than 50 selections to fail")
	}
}

func TestStringAnswer(t *testing.T) {
	answers := map[string]interface{}{"name": "  Alex  ", "age": 30.0}

	if got := StringAnswer(answers, "name"); got != "Alex" {
		t.Errorf("Expected 'Alex', got '%s'", got)
	}
	if got := StringAnswer(answers, "age"); got != "" {
		t.Errorf("Expected mistyped answer to read as empty, got '%s'", got)
	}
	if got := StringAnswer(answers, "missing"); got != "" {
		t.Errorf("Expected missing answer to read as empty, got '%s'", got)
	}
}

func TestStringSliceAnswer(t *testing.T) {
	answers := map[string]interface{}{
		"tools_used": []interface{}{" ChatGPT ", "Claude"},
		"name":       "Alex",
	}

	got := StringSliceAnswer(answers, "tools_used")
	if len(got) != 2 || got[0] != "ChatGPT" || got[1] != "Claude" {
		t.Errorf("Unexpected slice: %v", got)
	}

	if got := StringSliceAnswer(answers, "name"); got != nil {
		t.Errorf("Expected mistyped answer to read as nil, got %v", got)
	}
}
