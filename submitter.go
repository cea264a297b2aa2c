package main

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const descriptionPreamble = "Onboarding ticket created from a Slack reaction."

// TicketCreationError is the terminal failure of the submitter, raised only
// after every applicable creation path has been tried.
type TicketCreationError struct {
	Stage      string
	HTTPStatus int
	Detail     string
}

func (e *TicketCreationError) Error() string {
	if e.HTTPStatus != 0 {
		return fmt.Sprintf("ticket creation failed at %s (HTTP %d): %s", e.Stage, e.HTTPStatus, e.Detail)
	}
	return fmt.Sprintf("ticket creation failed at %s: %s", e.Stage, e.Detail)
}

// submitTicket files a ticket for the reacted message. When a request type is
// configured the service-desk path goes first; any failure there logs and
// falls through to the generic issue path. Only a generic-path create failure
// surfaces as an error.
func submitTicket(ctx context.Context, jc *jiraClient, md messageData, config Config) (*ticketResult, error) {
	var attrs map[string]string
	if looksLikeNotification(md.Text) {
		attrs = parseNotification(md.Text)
	}

	if config.JiraRequestType != "" {
		result, err := submitServiceDeskRequest(ctx, jc, md, attrs, config)
		if err == nil {
			return result, nil
		}
		Warn("Service desk path failed, falling back to generic issue: %v", err)
	}

	return submitGenericIssue(ctx, jc, md, attrs, config)
}

func submitServiceDeskRequest(ctx context.Context, jc *jiraClient, md messageData, attrs map[string]string, config Config) (*ticketResult, error) {
	deskID, typeID, schema, err := discoverRequestTypeFields(ctx, jc, config.JiraProjectKey, config.JiraRequestType)
	if err != nil {
		return nil, fmt.Errorf("request type discovery: %w", err)
	}

	values := map[string]interface{}{
		"summary":     buildSummary(attrs),
		"description": buildDescription(md),
	}
	mergeFields(values, mapFields(attrs, schema))
	mergeFields(values, config.JiraCustomFields)

	result, err := jc.CreateRequest(ctx, deskID, typeID, values)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return result, nil
}

func submitGenericIssue(ctx context.Context, jc *jiraClient, md messageData, attrs map[string]string, config Config) (*ticketResult, error) {
	schema, err := discoverCreateMetaFields(ctx, jc, config.JiraProjectKey, config.JiraIssueType)
	if err != nil {
		// The final create still runs; it just gets no mapped fields.
		Warn("Createmeta discovery failed, submitting without mapped fields: %v", err)
		schema = nil
	}

	fields := map[string]interface{}{
		"project":     map[string]interface{}{"key": config.JiraProjectKey},
		"issuetype":   map[string]interface{}{"name": config.JiraIssueType},
		"summary":     buildSummary(attrs),
		"description": buildDescription(md),
	}
	mergeFields(fields, mapFields(attrs, schema))
	mergeFields(fields, config.JiraCustomFields)

	result, err := jc.CreateIssue(ctx, fields)
	if err != nil {
		return nil, newTicketCreationError("generic issue create", err)
	}
	return result, nil
}

func newTicketCreationError(stage string, err error) *TicketCreationError {
	var apiErr *jiraAPIError
	if errors.As(err, &apiErr) {
		return &TicketCreationError{Stage: stage, HTTPStatus: apiErr.Status, Detail: apiErr.Body}
	}
	return &TicketCreationError{Stage: stage, Detail: err.Error()}
}

// mergeFields copies src entries into dst, overriding on key collisions.
func mergeFields(dst map[string]interface{}, src map[string]interface{}) {
	for key, value := range src {
		dst[key] = value
	}
}

func buildSummary(attrs map[string]string) string {
	if name := attrs["name"]; name != "" {
		return "Onboarding: " + name
	}
	return "Onboarding request " + time.Now().Format("2006-01-02")
}

// buildDescription has one fixed shape no matter which path files the ticket:
// preamble, extracted message text, requester, permalink, blank-line separated.
func buildDescription(md messageData) string {
	return fmt.Sprintf("%s\n\n%s\n\nRequested by: %s\n\n%s",
		descriptionPreamble, md.Text, md.AuthorName, md.Permalink)
}
