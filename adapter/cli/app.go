package cli

import (
	"time"

	"github.com/google/uuid"

	"github.com/imsachin001/chronosync/adapter/api"
	"github.com/imsachin001/chronosync/internal/tasks/application/commands"
	"github.com/imsachin001/chronosync/internal/tasks/application/queries"
)

// App holds the CLI application dependencies.
type App struct {
	// Task Command Handlers
	CreateTaskHandler *commands.CreateTaskHandler
	ToggleTaskHandler *commands.ToggleTaskHandler
	DeleteTaskHandler *commands.DeleteTaskHandler

	// Task Query Handlers
	ListTasksHandler *queries.ListTasksHandler

	// Analytics views and repair routines
	Analytics api.AnalyticsService

	// Location is the time zone due dates are entered in.
	Location *time.Location

	// HTTP server settings used by the serve command
	ServerConfig api.ServerConfig

	// Current user ID
	CurrentUserID uuid.UUID
}

// NewApp creates a new CLI application with the given handlers.
func NewApp(
	createTask *commands.CreateTaskHandler,
	toggleTask *commands.ToggleTaskHandler,
	deleteTask *commands.DeleteTaskHandler,
	listTasks *queries.ListTasksHandler,
	analytics api.AnalyticsService,
	location *time.Location,
) *App {
	if location == nil {
		location = time.Local
	}
	return &App{
		CreateTaskHandler: createTask,
		ToggleTaskHandler: toggleTask,
		DeleteTaskHandler: deleteTask,
		ListTasksHandler:  listTasks,
		Analytics:         analytics,
		Location:          location,
		ServerConfig:      api.DefaultServerConfig(),
	}
}

// SetCurrentUserID sets the user the CLI acts as.
func (a *App) SetCurrentUserID(id uuid.UUID) {
	a.CurrentUserID = id
}

// SetServerConfig sets the HTTP server settings for the serve command.
func (a *App) SetServerConfig(cfg api.ServerConfig) {
	a.ServerConfig = cfg
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
