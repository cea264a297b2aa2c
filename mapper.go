package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/araddon/dateparse"
	"gopkg.in/yaml.v3"
)

// fieldAliases lists, per attribute, the destination display-name substrings
// worth matching. Order matters: candidates are tried in order and the first
// schema field containing any of them wins, so a reordering here changes which
// field gets picked when a project has several near-matches.
var fieldAliases = map[string][]string{
	"name":           {"New Hire Name", "Employee Name", "Full Name", "Name"},
	"preferredName":  {"Preferred Name"},
	"startDate":      {"Start Date", "Start date", "Employment Start Date"},
	"title":          {"Job Title", "Title", "Role"},
	"department":     {"Department", "Team"},
	"manager":        {"Manager", "Hiring Manager", "Reports To"},
	"employmentType": {"Employment Type", "Employee Type"},
	"workLocation":   {"Work Location", "Location", "Office"},
	"email":          {"Email", "Work Email"},
}

// attributeOrder fixes the iteration order of mapFields so that two
// attributes matching the same destination field always resolve the same way.
var attributeOrder = []string{
	"name", "preferredName", "startDate", "title", "department",
	"manager", "employmentType", "workLocation", "email",
}

// loadAliasOverrides merges a YAML file of attribute -> candidate lists on top
// of the built-in alias table. Missing file path is a no-op.
func loadAliasOverrides(path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read alias file: %w", err)
	}
	overrides := make(map[string][]string)
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return fmt.Errorf("failed to parse alias file: %w", err)
	}
	for attr, candidates := range overrides {
		fieldAliases[attr] = candidates
	}
	return nil
}

// mapFields matches parsed attributes onto the discovered schema. Scanning is
// first-match-wins in schema order; destination projects depend on that exact
// tie-break, so keep it. Unmatched attributes are dropped, "user" typed fields
// are skipped (no way to resolve a free-text name to an account), "date" typed
// fields get their value normalized.
func mapFields(attrs map[string]string, schema []jiraField) map[string]interface{} {
	mapped := make(map[string]interface{})
	for _, attr := range attributeOrder {
		value, present := attrs[attr]
		if !present || value == "" {
			continue
		}
		candidates, ok := fieldAliases[attr]
		if !ok {
			candidates = []string{attr}
		}
		field, found := matchField(candidates, schema)
		if !found {
			continue
		}
		switch field.Type {
		case "user":
			continue
		case "date":
			mapped[field.ID] = formatDate(value)
		default:
			mapped[field.ID] = strings.TrimSpace(value)
		}
	}
	return mapped
}

func matchField(candidates []string, schema []jiraField) (jiraField, bool) {
	for _, field := range schema {
		name := strings.ToLower(field.Name)
		for _, candidate := range candidates {
			if strings.Contains(name, strings.ToLower(candidate)) {
				return field, true
			}
		}
	}
	return jiraField{}, false
}

// formatDate normalizes any parseable date spelling to YYYY-MM-DD. Strings
// like "TBD" pass through unchanged; validation, if any, is Jira's problem.
func formatDate(value string) string {
	t, err := dateparse.ParseAny(strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return t.Format("2006-01-02")
}
