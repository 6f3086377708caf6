package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const refDescription = "Record id, unique id prefix, or 1-based position in the matching list."

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListTodosTool(srv, svc)
	registerAddTodoTool(srv, svc)
	registerToggleTodoTool(srv, svc)
	registerDeleteTodoTool(srv, svc)
	registerClearCompletedTool(srv, svc)

	registerListCountdownsTool(srv, svc)
	registerAddCountdownTool(srv, svc)
	registerSetCountdownDateTool(srv, svc)
	registerDeleteCountdownTool(srv, svc)

	registerListMilestonesTool(srv, svc)
	registerAddMilestoneTool(srv, svc)
	registerSetMilestoneStatusTool(srv, svc)
	registerSetMilestoneDateTool(srv, svc)
	registerDeleteMilestoneTool(srv, svc)

	registerTimelineTool(srv, svc)
	registerSummaryTool(srv, svc)
}

func registerListTodosTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_todos",
		mcp.WithDescription("List todos in the order they were added."),
		mcp.WithString("filter",
			mcp.Description("Which todos to return."),
			mcp.Enum("all", "active", "completed"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListTodos(request.GetString("filter", "all"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerAddTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_todo",
		mcp.WithDescription("Add an open todo."),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("What needs doing."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.AddTodo(ctx, text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerToggleTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"toggle_todo",
		mcp.WithDescription("Flip a todo between open and completed."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		t, err := svc.ToggleTodo(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(t)
	})
}

func registerDeleteTodoTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_todo",
		mcp.WithDescription("Delete a todo."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.DeleteTodo(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerClearCompletedTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"clear_completed_todos",
		mcp.WithDescription("Delete every completed todo."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n, err := svc.ClearCompleted(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"removed": n})
	})
}

func registerListCountdownsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_countdowns",
		mcp.WithDescription("List countdowns by date with the days remaining until each."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListCountdowns()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerAddCountdownTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_countdown",
		mcp.WithDescription("Start counting down to a date."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("What is happening on the date."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Target date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name string `json:"name"`
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		row, err := svc.AddCountdown(ctx, args.Name, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(row)
	})
}

func registerSetCountdownDateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_countdown_date",
		mcp.WithDescription("Move a countdown to another date."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("New target date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		row, err := svc.SetCountdownDate(ctx, ref, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(row)
	})
}

func registerDeleteCountdownTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_countdown",
		mcp.WithDescription("Delete a countdown."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.DeleteCountdown(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerListMilestonesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_milestones",
		mcp.WithDescription("List milestones, pending first, each group by date."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		list, err := svc.ListMilestones()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(list)
	})
}

func registerAddMilestoneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_milestone",
		mcp.WithDescription("Add a pending milestone to the roadmap."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Milestone name."),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("Due date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Name string `json:"name"`
			Date string `json:"date"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		row, err := svc.AddMilestone(ctx, args.Name, args.Date)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(row)
	})
}

func registerSetMilestoneStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_milestone_status",
		mcp.WithDescription("Change a milestone's status. Completing it records today as the completion date."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
		mcp.WithString("status",
			mcp.Required(),
			mcp.Description("New status."),
			mcp.Enum("pending", "completed", "cancelled"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		status, err := request.RequireString("status")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		row, err := svc.SetMilestoneStatus(ctx, ref, status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(row)
	})
}

func registerSetMilestoneDateTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"set_milestone_date",
		mcp.WithDescription("Move a milestone to another date."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
		mcp.WithString("date",
			mcp.Required(),
			mcp.Description("New due date as YYYY-MM-DD."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		row, err := svc.SetMilestoneDate(ctx, ref, request.GetString("date", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(row)
	})
}

func registerDeleteMilestoneTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_milestone",
		mcp.WithDescription("Delete a milestone."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description(refDescription),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		id, err := svc.DeleteMilestone(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": id})
	})
}

func registerTimelineTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_timeline",
		mcp.WithDescription("Place pending milestones on a window that starts today. Positions run from 0 to 1."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		layout, err := svc.Timeline()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(layout)
	})
}

func registerSummaryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_summary",
		mcp.WithDescription("Count open todos, past countdowns and overdue milestones."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sum, err := svc.Summary()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(sum)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
