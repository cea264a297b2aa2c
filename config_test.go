package main

import "testing"

func TestGetEnvAsJSONObject(t *testing.T) {
	t.Setenv("TEST_CUSTOM_FIELDS", `{"customfield_10050":"People Ops","labels":["onboarding"]}`)
	obj := getEnvAsJSONObject("TEST_CUSTOM_FIELDS")
	if obj["customfield_10050"] != "People Ops" {
		t.Errorf("Expected parsed custom field, got %v", obj)
	}

	t.Setenv("TEST_CUSTOM_FIELDS", "not json")
	if obj := getEnvAsJSONObject("TEST_CUSTOM_FIELDS"); obj != nil {
		t.Errorf("Expected nil for malformed JSON, got %v", obj)
	}

	if obj := getEnvAsJSONObject("TEST_CUSTOM_FIELDS_UNSET"); obj != nil {
		t.Errorf("Expected nil for unset variable, got %v", obj)
	}
}

func TestGetEnvAsIntSeconds(t *testing.T) {
	t.Setenv("TEST_TTL", "90")
	if got := getEnvAsIntSeconds("TEST_TTL", "1h"); got != 90 {
		t.Errorf("Expected 90, got %d", got)
	}

	t.Setenv("TEST_TTL", "2h")
	if got := getEnvAsIntSeconds("TEST_TTL", "1h"); got != 7200 {
		t.Errorf("Expected 7200, got %d", got)
	}

	t.Setenv("TEST_TTL", "")
	if got := getEnvAsIntSeconds("TEST_TTL", "168h"); got != 604800 {
		t.Errorf("Expected default 604800, got %d", got)
	}
}
