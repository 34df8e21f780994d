package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	analytics "github.com/imsachin001/chronosync/internal/analytics/domain"
)

var (
	badgeColor  = color.New(color.FgYellow, color.Bold)
	streakColor = color.New(color.FgRed, color.Bold)
	okColor     = color.New(color.FgGreen)
	mutedColor  = color.New(color.Faint)
)

// PrintBadge announces a newly earned badge.
func PrintBadge(w io.Writer, b *analytics.EarnedBadge) {
	if b == nil {
		return
	}
	badgeColor.Fprintf(w, "%s New badge unlocked: %s (level %d %s badge)\n", b.Emoji, b.Name, b.Level, b.Type)
}

// PrintStreak renders a streak line, highlighted once it is running.
func PrintStreak(w io.Writer, current, longest int) {
	if current == 0 {
		mutedColor.Fprintf(w, "No active streak (longest %d days)\n", longest)
		return
	}
	streakColor.Fprintf(w, "🔥 %d day streak", current)
	fmt.Fprintf(w, " (longest %d days)\n", longest)
}

// PrintSuccess prints a confirmation line.
func PrintSuccess(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, format+"\n", args...)
}

// PrintJSON writes v as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
