package main

import (
	"regexp"
	"strings"
)

// attributePatterns maps each onboarding attribute to the labeled-line pattern
// that extracts it. The upstream HR system emits a fixed set of "Label: value"
// lines with no machine-readable schema, so a rigid per-field regex beats any
// general structured parsing here. First match per pattern wins.
var attributePatterns = map[string]*regexp.Regexp{
	"name":           regexp.MustCompile(`(?im)^\s*New Hire:\s*(.+)$`),
	"preferredName":  regexp.MustCompile(`(?im)^\s*Preferred Name:\s*(.+)$`),
	"startDate":      regexp.MustCompile(`(?im)^\s*Start Date:\s*(.+)$`),
	"title":          regexp.MustCompile(`(?im)^\s*(?:Job )?Title:\s*(.+)$`),
	"department":     regexp.MustCompile(`(?im)^\s*Department:\s*(.+)$`),
	"manager":        regexp.MustCompile(`(?im)^\s*Manager:\s*(.+)$`),
	"employmentType": regexp.MustCompile(`(?im)^\s*Employment Type:\s*(.+)$`),
	"workLocation":   regexp.MustCompile(`(?im)^\s*(?:Work )?Location:\s*(.+)$`),
	"email":          regexp.MustCompile(`(?im)^\s*(?:Work )?Email:\s*(.+)$`),
}

// notificationMarkers identify a message as an onboarding notification worth
// running through the parser at all.
var notificationMarkers = []string{"New Hire:", "Start Date:"}

// parseNotification extracts the onboarding attributes present in text.
// Attributes whose pattern does not match are absent from the result; an
// absent key is distinct from an empty value.
func parseNotification(text string) map[string]string {
	attrs := make(map[string]string)
	for key, pattern := range attributePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		attrs[key] = strings.TrimSpace(m[1])
	}
	return attrs
}

func looksLikeNotification(text string) bool {
	for _, marker := range notificationMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
