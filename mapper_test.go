package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFormatDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"12/1/25", "2025-12-01"},
		{"December 1, 2025", "2025-12-01"},
		{"12/01/2025", "2025-12-01"},
		{"2026-01-05", "2026-01-05"},
		{"TBD", "TBD"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := formatDate(tc.in); got != tc.want {
			t.Errorf("formatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMapFieldsBasic(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_10001", Name: "Start Date", Type: "date"},
		{ID: "customfield_10002", Name: "Department", Type: "string"},
	}
	attrs := map[string]string{
		"startDate":  "1/5/2026",
		"department": "Sales",
	}
	mapped := mapFields(attrs, schema)

	if mapped["customfield_10001"] != "2026-01-05" {
		t.Errorf("Expected normalized date '2026-01-05', got %v", mapped["customfield_10001"])
	}
	if mapped["customfield_10002"] != "Sales" {
		t.Errorf("Expected 'Sales', got %v", mapped["customfield_10002"])
	}
}

func TestMapFieldsFirstSchemaFieldWins(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_20001", Name: "Employment Start Date", Type: "string"},
		{ID: "customfield_20002", Name: "Start Date", Type: "date"},
	}
	mapped := mapFields(map[string]string{"startDate": "1/5/2026"}, schema)

	if _, present := mapped["customfield_20002"]; present {
		t.Error("Expected later schema field to lose to the earlier one")
	}
	if mapped["customfield_20001"] != "1/5/2026" {
		t.Errorf("Expected earlier field to win with raw value, got %v", mapped)
	}
}

func TestMapFieldsSkipsUserFields(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_30001", Name: "Manager", Type: "user"},
	}
	mapped := mapFields(map[string]string{"manager": "John Smith"}, schema)
	if len(mapped) != 0 {
		t.Errorf("Expected user-typed field to be skipped, got %v", mapped)
	}
}

func TestMapFieldsDropsUnmatched(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_40001", Name: "Severity", Type: "string"},
	}
	mapped := mapFields(map[string]string{"department": "Sales"}, schema)
	if len(mapped) != 0 {
		t.Errorf("Expected unmatched attribute to be dropped, got %v", mapped)
	}
}

func TestMapFieldsUnparseableDatePassesThrough(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_50001", Name: "Start Date", Type: "date"},
	}
	mapped := mapFields(map[string]string{"startDate": "TBD"}, schema)
	if mapped["customfield_50001"] != "TBD" {
		t.Errorf("Expected unparseable date to pass through, got %v", mapped)
	}
}

func TestMapFieldsCaseInsensitiveMatch(t *testing.T) {
	schema := []jiraField{
		{ID: "customfield_60001", Name: "EMPLOYMENT TYPE", Type: "string"},
	}
	mapped := mapFields(map[string]string{"employmentType": "Full-time"}, schema)
	if mapped["customfield_60001"] != "Full-time" {
		t.Errorf("Expected case-insensitive display-name match, got %v", mapped)
	}
}

func TestLoadAliasOverrides(t *testing.T) {
	original := fieldAliases["department"]
	defer func() { fieldAliases["department"] = original }()

	path := filepath.Join(t.TempDir(), "aliases.yaml")
	content := "department:\n  - Org Unit\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write alias file: %v", err)
	}
	if err := loadAliasOverrides(path); err != nil {
		t.Fatalf("loadAliasOverrides returned error: %v", err)
	}

	schema := []jiraField{{ID: "customfield_70001", Name: "Org Unit", Type: "string"}}
	mapped := mapFields(map[string]string{"department": "Sales"}, schema)
	if mapped["customfield_70001"] != "Sales" {
		t.Errorf("Expected override alias to match, got %v", mapped)
	}
}

func TestLoadAliasOverridesMissingPathIsNoop(t *testing.T) {
	if err := loadAliasOverrides(""); err != nil {
		t.Errorf("Expected empty path to be a no-op, got %v", err)
	}
}
