package achievements

// Category decides which stat an achievement is compared against.
type Category string

const (
	CategoryStreak Category = "streak"
	CategoryTime   Category = "time"
	CategoryTasks  Category = "tasks"
)

type Achievement struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Requirement int      `json:"requirement"`
	Unit        string   `json:"unit"`
}

// Catalog is the fixed achievement table. It is versioned in code, never
// persisted; only unlock rows go to the store.
var Catalog = []Achievement{
	// Streaks
	{ID: "streak_3", Name: "Getting Started", Description: "Work for 3 days in a row", Icon: "🔥", Category: CategoryStreak, Requirement: 3, Unit: "days"},
	{ID: "streak_7", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "⚡", Category: CategoryStreak, Requirement: 7, Unit: "days"},
	{ID: "streak_14", Name: "Two Week Champion", Description: "Maintain a 14-day streak", Icon: "🏆", Category: CategoryStreak, Requirement: 14, Unit: "days"},
	{ID: "streak_30", Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "👑", Category: CategoryStreak, Requirement: 30, Unit: "days"},
	{ID: "streak_100", Name: "Century Legend", Description: "Maintain a 100-day streak", Icon: "💎", Category: CategoryStreak, Requirement: 100, Unit: "days"},
	// Focus time, in hours
	{ID: "time_10", Name: "First 10 Hours", Description: "Accumulate 10 hours of focus time", Icon: "⏱️", Category: CategoryTime, Requirement: 10, Unit: "hours"},
	{ID: "time_50", Name: "Half Century", Description: "Accumulate 50 hours of focus time", Icon: "⌛", Category: CategoryTime, Requirement: 50, Unit: "hours"},
	{ID: "time_100", Name: "Centurion", Description: "Accumulate 100 hours of focus time", Icon: "🎯", Category: CategoryTime, Requirement: 100, Unit: "hours"},
	{ID: "time_500", Name: "Time Lord", Description: "Accumulate 500 hours of focus time", Icon: "🌟", Category: CategoryTime, Requirement: 500, Unit: "hours"},
	{ID: "time_1000", Name: "Millennium", Description: "Accumulate 1000 hours of focus time", Icon: "🚀", Category: CategoryTime, Requirement: 1000, Unit: "hours"},
	// Completed tasks
	{ID: "tasks_10", Name: "Task Starter", Description: "Complete 10 tasks", Icon: "✅", Category: CategoryTasks, Requirement: 10, Unit: "tasks"},
	{ID: "tasks_50", Name: "Task Master", Description: "Complete 50 tasks", Icon: "📋", Category: CategoryTasks, Requirement: 50, Unit: "tasks"},
	{ID: "tasks_100", Name: "Century Closer", Description: "Complete 100 tasks", Icon: "🎖️", Category: CategoryTasks, Requirement: 100, Unit: "tasks"},
	{ID: "tasks_500", Name: "Task Titan", Description: "Complete 500 tasks", Icon: "🏅", Category: CategoryTasks, Requirement: 500, Unit: "tasks"},
	{ID: "tasks_1000", Name: "Productivity Legend", Description: "Complete 1000 tasks", Icon: "🎊", Category: CategoryTasks, Requirement: 1000, Unit: "tasks"},
}

// ByID looks an achievement up in the catalog.
func ByID(id string) (Achievement, bool) {
	for _, a := range Catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}
