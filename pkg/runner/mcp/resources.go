package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerHabitsResource(srv, svc)
	registerRecordsResource(srv, svc)
	registerPlanTemplate(srv, svc)
}

func registerHabitsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"habits://habits",
		"Habits",
		mcp.WithResourceDescription("The habit labels a check-in is made against."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		habits := svc.Habits()
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"habits": habits,
			"count":  len(habits),
		})
	})
}

func registerRecordsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"habits://records",
		"Daily Records",
		mcp.WithResourceDescription("The rolling window of daily check-in records."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		recs := svc.Records(ctx)
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"records": recs,
			"count":   len(recs),
		})
	})
}

func registerPlanTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"habits://plans/{date}",
		"Day Plan",
		mcp.WithTemplateDescription("Hour-slotted entries planned for a day (YYYY-MM-DD)."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		date := templateArg(request.Params.Arguments["date"])
		if date == "" {
			return nil, fmt.Errorf("date is required")
		}

		dto, err := svc.PlanEntries(ctx, date)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, dto)
	})
}

// templateArg accepts both the plain and the list form of a matched URI
// template variable.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
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
