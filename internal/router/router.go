package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/noctura/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Todo     *apiHandler.BoardHandler
	Kanban   *apiHandler.BoardHandler
	Comment  *apiHandler.CommentHandler
	Habit    *apiHandler.HabitHandler
	Night    *apiHandler.NightHandler
	Reminder *apiHandler.ReminderHandler
	Bedtime  *apiHandler.BedtimeHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/auth/register", handlers.Auth.Register)
	r.POST("/api/auth/login", handlers.Auth.Login)
	r.POST("/api/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.GET("/api/auth/me", authMiddleware(handlers.Auth.Me))
	r.PUT("/api/auth/update-profile", authMiddleware(handlers.Auth.UpdateProfile))

	// Todo board
	r.GET("/api/todo", authMiddleware(handlers.Todo.List))
	r.POST("/api/todo", authMiddleware(handlers.Todo.Create))
	r.PUT("/api/todo/batch", authMiddleware(handlers.Todo.BatchUpdate))
	r.PUT("/api/todo/{id}", authMiddleware(handlers.Todo.Update))
	r.PUT("/api/todo/{id}/move", authMiddleware(handlers.Todo.Move))
	r.DELETE("/api/todo/{id}", authMiddleware(handlers.Todo.Delete))

	// Kanban board
	r.GET("/api/kanban", authMiddleware(handlers.Kanban.List))
	r.POST("/api/kanban", authMiddleware(handlers.Kanban.Create))
	r.PUT("/api/kanban/batch", authMiddleware(handlers.Kanban.BatchUpdate))
	r.PUT("/api/kanban/{id}", authMiddleware(handlers.Kanban.Update))
	r.PUT("/api/kanban/{id}/move", authMiddleware(handlers.Kanban.Move))
	r.DELETE("/api/kanban/{id}", authMiddleware(handlers.Kanban.Delete))

	// Kanban card comments
	r.POST("/api/kanban/{id}/comments", authMiddleware(handlers.Comment.Add))
	r.PUT("/api/kanban/{id}/comments/{commentId}", authMiddleware(handlers.Comment.Edit))
	r.DELETE("/api/kanban/{id}/comments/{commentId}", authMiddleware(handlers.Comment.Delete))

	// Habits
	r.GET("/api/habits", authMiddleware(handlers.Habit.List))
	r.POST("/api/habits", authMiddleware(handlers.Habit.Create))
	r.PUT("/api/habits/{id}", authMiddleware(handlers.Habit.Update))
	r.DELETE("/api/habits/{id}", authMiddleware(handlers.Habit.Delete))
	r.POST("/api/habits/{id}/complete", authMiddleware(handlers.Habit.MarkCompleted))
	r.POST("/api/habits/{id}/uncomplete", authMiddleware(handlers.Habit.UnmarkCompleted))

	// Night entries and journal
	r.GET("/api/night-entry", authMiddleware(handlers.Night.Get))
	r.PUT("/api/night-entry", authMiddleware(handlers.Night.Save))
	r.GET("/api/night-entry/history", authMiddleware(handlers.Night.History))
	r.GET("/api/night-entry/journal-history", authMiddleware(handlers.Night.JournalHistory))
	r.DELETE("/api/night-entry/journal/{id}", authMiddleware(handlers.Night.DeleteJournalNote))

	// Reminders
	r.GET("/api/reminders/range", authMiddleware(handlers.Reminder.ListRange))
	r.GET("/api/reminders/{date}", authMiddleware(handlers.Reminder.ListByDate))
	r.POST("/api/reminders", authMiddleware(handlers.Reminder.Create))
	r.PUT("/api/reminders/{id}", authMiddleware(handlers.Reminder.Update))
	r.DELETE("/api/reminders/{id}", authMiddleware(handlers.Reminder.Delete))

	// Bedtime plans
	r.GET("/api/night-tasks", authMiddleware(handlers.Bedtime.List))
	r.POST("/api/night-tasks", authMiddleware(handlers.Bedtime.Create))
	r.PUT("/api/night-tasks/{id}", authMiddleware(handlers.Bedtime.Update))
	r.DELETE("/api/night-tasks/{id}", authMiddleware(handlers.Bedtime.Delete))

	return r
}
