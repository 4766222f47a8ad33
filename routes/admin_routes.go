package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/kimanzi254/consult_admin/handlers"
	"github.com/kimanzi254/consult_admin/middleware"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	dashboard := admin.Group("/dashboard")
	dashboard.Get("/bookings", handlers.GetDashboardBookings)
	dashboard.Post("/bookings/:bookingId/approve", handlers.ApproveBooking)
	dashboard.Post("/bookings/:bookingId/reject", handlers.RejectBooking)
	dashboard.Post("/bookings/:bookingId/meeting-link", handlers.GenerateBookingMeetingLink)
	dashboard.Delete("/session", handlers.SignOutAdmin)

	reports := admin.Group("/reports")
	reports.Get("/bookings", handlers.GenerateReport)

	app.Use("/ws/admin", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/admin/notifications", websocket.New(handlers.ServeAdminNotifications))
}
