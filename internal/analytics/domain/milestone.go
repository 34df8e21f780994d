package domain

// Milestone is one tier of a badge track.
type Milestone struct {
	Level     int
	Threshold int
	Name      string
	Emoji     string
}

// TaskMilestones are reached by lifetime completed tasks.
var TaskMilestones = []Milestone{
	{Level: 1, Threshold: 5, Name: "Task Initiate", Emoji: "🐣"},
	{Level: 2, Threshold: 10, Name: "Getting Things Done", Emoji: "📌"},
	{Level: 3, Threshold: 20, Name: "Workflow Warrior", Emoji: "⚙️"},
	{Level: 4, Threshold: 50, Name: "Task Commander", Emoji: "🚀"},
	{Level: 5, Threshold: 100, Name: "Task Master", Emoji: "👑"},
	{Level: 6, Threshold: 250, Name: "Productivity Guru", Emoji: "🧠"},
	{Level: 7, Threshold: 500, Name: "Legend of Discipline", Emoji: "🏆"},
	{Level: 8, Threshold: 1000, Name: "Mythical Pull", Emoji: "🌟"},
}

// StreakMilestones are reached by the current completion streak in days.
var StreakMilestones = []Milestone{
	{Level: 1, Threshold: 7, Name: "Focus Streak", Emoji: "🔥"},
	{Level: 2, Threshold: 30, Name: "Momentum Builder", Emoji: "⚡"},
	{Level: 3, Threshold: 100, Name: "Discipline Monk", Emoji: "🧠"},
	{Level: 4, Threshold: 200, Name: "Zen Master", Emoji: "🐉"},
	{Level: 5, Threshold: 365, Name: "One-Year Warrior", Emoji: "🌍"},
	{Level: 6, Threshold: 1000, Name: "Final Boss", Emoji: "🏆"},
}

// MilestoneResolution is where a counter sits on a milestone table.
type MilestoneResolution struct {
	// Reached is the highest milestone with Threshold <= counter, or nil.
	Reached       *Milestone
	NextMilestone int
	Progress      int
	// Promoted is set when Reached is above the stored level.
	Promoted bool
}

// ResolveMilestone places counter on table, which must be ordered by level.
// It has no side effects and backs both live updates and repair.
func ResolveMilestone(table []Milestone, counter, storedLevel int) MilestoneResolution {
	var reached *Milestone
	idx := -1
	for i := range table {
		if table[i].Threshold <= counter {
			reached = &table[i]
			idx = i
		}
	}

	if reached == nil {
		res := MilestoneResolution{Progress: counter}
		if len(table) > 0 {
			res.NextMilestone = table[0].Threshold
		}
		return res
	}

	res := MilestoneResolution{Reached: reached, Promoted: reached.Level > storedLevel}
	if idx+1 < len(table) {
		res.NextMilestone = table[idx+1].Threshold
		res.Progress = counter - reached.Threshold
	} else {
		res.NextMilestone = reached.Threshold
	}
	return res
}

// ProgressPercentage is how far current has moved from the previous
// threshold toward next, clamped to 0..100. It is 0 when next is not a
// threshold in table.
func ProgressPercentage(table []Milestone, current, next int) int {
	for i, m := range table {
		if m.Threshold != next {
			continue
		}
		start := 0
		if i > 0 {
			start = table[i-1].Threshold
		}
		if next <= start {
			return 0
		}
		return max(0, min(100, percent(current-start, next-start)))
	}
	return 0
}
