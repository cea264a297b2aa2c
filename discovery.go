package main

import (
	"context"
	"errors"
	"strings"
)

// errNotFound means a discovery lookup step had no match: unknown project,
// unknown request type, or createmeta with no creatable issue types.
var errNotFound = errors.New("not found")

// discoverRequestTypeFields resolves the service desk for projectKey, finds
// the request type whose display name contains requestTypeName
// (case-insensitive), and fetches that request type's fields. Nothing is
// cached; every call sees the live project state.
func discoverRequestTypeFields(ctx context.Context, jc *jiraClient, projectKey, requestTypeName string) (serviceDeskID, requestTypeID string, fields []jiraField, err error) {
	desks, err := jc.ListServiceDesks(ctx)
	if err != nil {
		return "", "", nil, err
	}
	for _, desk := range desks {
		if strings.EqualFold(desk.ProjectKey, projectKey) {
			serviceDeskID = desk.ID
			break
		}
	}
	if serviceDeskID == "" {
		return "", "", nil, errNotFound
	}

	types, err := jc.ListRequestTypes(ctx, serviceDeskID)
	if err != nil {
		return "", "", nil, err
	}
	want := strings.ToLower(requestTypeName)
	for _, rt := range types {
		if strings.Contains(strings.ToLower(rt.Name), want) {
			requestTypeID = rt.ID
			break
		}
	}
	if requestTypeID == "" {
		return "", "", nil, errNotFound
	}

	fields, err = jc.GetRequestTypeFields(ctx, serviceDeskID, requestTypeID)
	if err != nil {
		return "", "", nil, err
	}
	return serviceDeskID, requestTypeID, fields, nil
}

// discoverCreateMetaFields fetches the creatable fields for a project and
// issue type through the classic createmeta endpoint. Fresh on every call.
func discoverCreateMetaFields(ctx context.Context, jc *jiraClient, projectKey, issueType string) ([]jiraField, error) {
	return jc.GetCreateMetaFields(ctx, projectKey, issueType)
}
