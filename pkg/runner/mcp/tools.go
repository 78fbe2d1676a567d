package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCheckInTool(srv, svc)
	registerListRecordsTool(srv, svc)
	registerAddPlanEntryTool(srv, svc)
	registerDeletePlanEntriesTool(srv, svc)
	registerListPlanEntriesTool(srv, svc)
	registerSelectDateTool(srv, svc)
	registerMonthGridTool(srv, svc)
	registerShiftMonthTool(srv, svc)
	registerReportTool(srv, svc)
}

func registerCheckInTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"checkin",
		mcp.WithDescription("Record today's habit check-in. Pass either the completed habit labels or a count."),
		mcp.WithArray("habits",
			mcp.Description("Labels of the habits completed today, matched case-insensitively."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of habits completed when labels are not given."),
		),
		mcp.WithNumber("mood",
			mcp.Required(),
			mcp.Description("Mood score from 1 to 10, values outside are clamped."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Habits []string `json:"habits"`
			Count  *int     `json:"count"`
			Mood   int      `json:"mood"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CheckIn(ctx, CheckInOptions{Habits: args.Habits, Count: args.Count, Mood: args.Mood})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListRecordsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_records",
		mcp.WithDescription("List the daily records of the rolling window, oldest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		recs := svc.Records(ctx)
		return toJSONResult(map[string]any{
			"records": recs,
			"count":   len(recs),
		})
	})
}

func registerAddPlanEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_plan_entry",
		mcp.WithDescription("Add an entry to a day plan. An existing entry at the same hour is replaced."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day in YYYY-MM-DD form."),
		),
		mcp.WithNumber("hour",
			mcp.Required(),
			mcp.Description("Hour slot from 0 to 23."),
		),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Short title of the entry."),
		),
		mcp.WithString("note",
			mcp.Description("Optional note."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date  string `json:"date"`
			Hour  int    `json:"hour"`
			Title string `json:"title"`
			Note  string `json:"note"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddPlanEntry(ctx, args.Date, args.Hour, args.Title, args.Note)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeletePlanEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_plan_entries",
		mcp.WithDescription("Delete the entries at the given hours of a day plan."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day in YYYY-MM-DD form."),
		),
		mcp.WithArray("hours",
			mcp.Required(),
			mcp.Description("Hour slots to clear."),
			mcp.Items(map[string]any{"type": "integer"}),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Date  string `json:"date"`
			Hours []int  `json:"hours"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, removed, err := svc.DeletePlanEntries(ctx, args.Date, args.Hours)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"plan":    dto,
			"removed": removed,
		})
	})
}

func registerListPlanEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_plan_entries",
		mcp.WithDescription("List the entries of a day plan ordered by hour."),
		mcp.WithString("date",
			mcp.Description("Day in YYYY-MM-DD form. Defaults to the selected day."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.PlanEntries(ctx, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerSelectDateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"select_date",
		mcp.WithDescription("Select a day and display its month."),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Day in YYYY-MM-DD form."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		date, err := request.RequireString("date")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.SelectDate(ctx, date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerMonthGridTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"month_grid",
		mcp.WithDescription("Monday-first week rows of a month, 0 marking days outside it. Defaults to the displayed month."),
		mcp.WithNumber("year",
			mcp.Description("Four digit year."),
		),
		mcp.WithNumber("month",
			mcp.Description("Month from 1 to 12."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		year := request.GetInt("year", 0)
		month := request.GetInt("month", 0)
		dto, err := svc.Month(ctx, year, month)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerShiftMonthTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"shift_month",
		mcp.WithDescription("Move the displayed month forward or back. The selected day is unchanged."),
		mcp.WithNumber("delta",
			mcp.Required(),
			mcp.Description("Months to move, negative for the past."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		delta, err := request.RequireInt("delta")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(svc.ShiftMonth(ctx, delta))
	})
}

func registerReportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"report",
		mcp.WithDescription("Summarize today's check-in with weather, coach feedback and a reward image."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.Report(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		md, err := sum.Markdown()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"summary":  sum,
			"markdown": md,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
