package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerTodosTemplate(srv, svc)
	registerStaticResource(srv, "daybook://countdowns", "Countdowns",
		"Countdowns sorted by date with days remaining.",
		func() (any, error) { return svc.ListCountdowns() })
	registerStaticResource(srv, "daybook://milestones", "Milestones",
		"Milestones with pending ones first.",
		func() (any, error) { return svc.ListMilestones() })
	registerStaticResource(srv, "daybook://timeline", "Timeline",
		"Pending milestones placed on the window starting today.",
		func() (any, error) { return svc.Timeline() })
	registerStaticResource(srv, "daybook://summary", "Summary",
		"What needs attention today across every list.",
		func() (any, error) { return svc.Summary() })
}

func registerStaticResource(srv *server.MCPServer, uri, name, description string, read func() (any, error)) {
	resource := mcp.NewResource(
		uri,
		name,
		mcp.WithResourceDescription(description),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		payload, err := read()
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerTodosTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"daybook://todos/{filter}",
		"Todos",
		mcp.WithTemplateDescription("Todos matching a filter: all, active or completed."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		filter := templateArg(request.Params.Arguments["filter"])
		list, err := svc.ListTodos(filter)
		if err != nil {
			return nil, fmt.Errorf("todos resource: %w", err)
		}
		return encodeResourceJSON(request.Params.URI, list)
	})
}

// templateArg unwraps a uri template variable, which the server hands over
// either as a string or as a list of strings.
func templateArg(v any) string {
	switch a := v.(type) {
	case string:
		return a
	case []string:
		if len(a) > 0 {
			return a[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
