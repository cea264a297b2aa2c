package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// jiraClient is a thin wrapper over the two Jira HTTP surfaces this bot uses:
// the classic issue API (/rest/api/2) and the service desk API
// (/rest/servicedeskapi).
type jiraClient struct {
	baseURL    string
	email      string
	apiToken   string
	httpClient *http.Client
}

func newJiraClient(config Config) *jiraClient {
	return &jiraClient{
		baseURL:    strings.TrimRight(config.JiraBaseURL, "/"),
		email:      config.JiraEmail,
		apiToken:   config.JiraAPIToken,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type jiraAPIError struct {
	Status int
	Path   string
	Body   string
}

func (e *jiraAPIError) Error() string {
	return fmt.Sprintf("jira API %s returned %d: %s", e.Path, e.Status, e.Body)
}

func (jc *jiraClient) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := jc.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(jc.email, jc.apiToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := jc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read jira response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &jiraAPIError{Status: resp.StatusCode, Path: path, Body: strings.TrimSpace(string(respBody))}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode jira response from %s: %w", path, err)
		}
	}
	return nil
}

// CreateIssue files a generic issue and returns its key and id.
func (jc *jiraClient) CreateIssue(ctx context.Context, fields map[string]interface{}) (*ticketResult, error) {
	var resp struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	err := jc.do(ctx, http.MethodPost, "/rest/api/2/issue", nil, map[string]interface{}{"fields": fields}, &resp)
	if err != nil {
		return nil, err
	}
	return &ticketResult{Key: resp.Key, ID: resp.ID}, nil
}

// GetCreateMetaFields fetches issue-creation metadata for one project and
// issue type. Field order follows the order Jira returned them in, which is
// why the fields object is decoded token by token instead of into a map.
func (jc *jiraClient) GetCreateMetaFields(ctx context.Context, projectKey, issueType string) ([]jiraField, error) {
	query := url.Values{}
	query.Set("projectKeys", projectKey)
	query.Set("issuetypeNames", issueType)
	query.Set("expand", "projects.issuetypes.fields")

	var resp struct {
		Projects []struct {
			IssueTypes []struct {
				Fields json.RawMessage `json:"fields"`
			} `json:"issuetypes"`
		} `json:"projects"`
	}
	if err := jc.do(ctx, http.MethodGet, "/rest/api/2/issue/createmeta", query, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Projects) == 0 || len(resp.Projects[0].IssueTypes) == 0 {
		return nil, errNotFound
	}
	return decodeOrderedFields(resp.Projects[0].IssueTypes[0].Fields)
}

func decodeOrderedFields(raw json.RawMessage) ([]jiraField, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode createmeta fields: %w", err)
	}
	var fields []jiraField
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode createmeta fields: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token in createmeta fields: %v", tok)
		}
		var meta struct {
			Name     string `json:"name"`
			Required bool   `json:"required"`
			Schema   struct {
				Type string `json:"type"`
			} `json:"schema"`
		}
		if err := dec.Decode(&meta); err != nil {
			return nil, fmt.Errorf("failed to decode createmeta field %s: %w", id, err)
		}
		fields = append(fields, jiraField{ID: id, Name: meta.Name, Type: meta.Schema.Type, Required: meta.Required})
	}
	return fields, nil
}

type serviceDesk struct {
	ID         string `json:"id"`
	ProjectKey string `json:"projectKey"`
}

type requestType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListServiceDesks returns the customer-facing projects visible to the bot.
func (jc *jiraClient) ListServiceDesks(ctx context.Context) ([]serviceDesk, error) {
	query := url.Values{}
	query.Set("limit", "100")
	var resp struct {
		Values []serviceDesk `json:"values"`
	}
	if err := jc.do(ctx, http.MethodGet, "/rest/servicedeskapi/servicedesk", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// ListRequestTypes returns the request types of one service desk.
func (jc *jiraClient) ListRequestTypes(ctx context.Context, serviceDeskID string) ([]requestType, error) {
	query := url.Values{}
	query.Set("limit", "100")
	var resp struct {
		Values []requestType `json:"values"`
	}
	path := fmt.Sprintf("/rest/servicedeskapi/servicedesk/%s/requesttype", serviceDeskID)
	if err := jc.do(ctx, http.MethodGet, path, query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// GetRequestTypeFields returns the creatable fields of one request type, in
// the order the API lists them.
func (jc *jiraClient) GetRequestTypeFields(ctx context.Context, serviceDeskID, requestTypeID string) ([]jiraField, error) {
	var resp struct {
		RequestTypeFields []struct {
			FieldID    string `json:"fieldId"`
			Name       string `json:"name"`
			Required   bool   `json:"required"`
			JiraSchema struct {
				Type string `json:"type"`
			} `json:"jiraSchema"`
		} `json:"requestTypeFields"`
	}
	path := fmt.Sprintf("/rest/servicedeskapi/servicedesk/%s/requesttype/%s/field", serviceDeskID, requestTypeID)
	if err := jc.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	fields := make([]jiraField, 0, len(resp.RequestTypeFields))
	for _, f := range resp.RequestTypeFields {
		fields = append(fields, jiraField{ID: f.FieldID, Name: f.Name, Type: f.JiraSchema.Type, Required: f.Required})
	}
	return fields, nil
}

// CreateRequest files a service-desk request and returns its key and id.
func (jc *jiraClient) CreateRequest(ctx context.Context, serviceDeskID, requestTypeID string, fieldValues map[string]interface{}) (*ticketResult, error) {
	body := map[string]interface{}{
		"serviceDeskId":      serviceDeskID,
		"requestTypeId":      requestTypeID,
		"requestFieldValues": fieldValues,
	}
	var resp struct {
		IssueID  string `json:"issueId"`
		IssueKey string `json:"issueKey"`
	}
	if err := jc.do(ctx, http.MethodPost, "/rest/servicedeskapi/request", nil, body, &resp); err != nil {
		return nil, err
	}
	return &ticketResult{Key: resp.IssueKey, ID: resp.IssueID}, nil
}
