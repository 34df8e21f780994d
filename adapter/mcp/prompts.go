package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers prompts for reviewing progress.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("weekly_review").
		Description("Review this week's completions, streak and badges, and plan next week.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Weekly Review Session",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Help me review my week. Please:

1. Read the chronosync://analytics/dashboard resource
2. Check overdue work with the chronosync://tasks/overdue resource
3. Compare weeks with the analytics.week_over_week tool

Then tell me:
- which day I got the most done and which category took most of my time
- whether my streak is at risk and how many days until the next streak badge
- how many completions until the next task badge
- which overdue tasks to finish first

Keep the recommendations short and use the task.* tools for any changes I approve.`,
						},
					},
				},
			}, nil
		})

	srv.Prompt("streak_check").
		Description("Check whether today's completions keep the streak alive.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return &mcp.PromptResult{
				Description: "Streak Check",
				Messages: []mcp.PromptMessage{
					{
						Role: string(mcp.RoleUser),
						Content: mcp.TextContent{
							Type: "text",
							Text: `Use the analytics.streak tool to see my current streak and whether I have completed anything today.
If I have not, suggest one small pending task from task.list that I could finish today to keep the streak going.`,
						},
					},
				},
			}, nil
		})

	return nil
}
