package handlers

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	config "github.com/kimanzi254/consult_admin/configs"
	"github.com/kimanzi254/consult_admin/dashboard"
	"github.com/kimanzi254/consult_admin/database"
	"github.com/kimanzi254/consult_admin/services"
	"github.com/kimanzi254/consult_admin/websocket"
)

// claimsSession adapts the JWT claims of the current request to the
// dashboard's session contract.
type claimsSession struct {
	c *fiber.Ctx
}

func (s claimsSession) CurrentPrincipal() (dashboard.Principal, bool) {
	token, ok := s.c.Locals("user").(*jwt.Token)
	if !ok {
		return dashboard.Principal{}, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return dashboard.Principal{}, false
	}
	rawID, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return dashboard.Principal{}, false
	}
	fullName, _ := claims["full_name"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return dashboard.Principal{ID: id, FullName: fullName, Email: email, Role: role}, true
}

func (s claimsSession) IsAdmin() bool {
	principal, ok := s.CurrentPrincipal()
	return ok && principal.Role == "admin"
}

func (s claimsSession) SignOut() error {
	// Tokens are stateless; signing out amounts to dropping the page state,
	// which the sign-out handler does.
	return nil
}

// noticeSink fans notifications out to the admin's websocket and keeps the
// latest one so the HTTP response can carry it too.
type noticeSink struct {
	adminID uuid.UUID

	mu          sync.Mutex
	lastSuccess string
	lastError   string
}

func (n *noticeSink) Success(message string) {
	n.mu.Lock()
	n.lastSuccess = message
	n.mu.Unlock()
	websocket.Push(websocket.Notice{UserID: n.adminID, Level: "success", Message: message})
}

func (n *noticeSink) Error(message string) {
	n.mu.Lock()
	n.lastError = message
	n.mu.Unlock()
	websocket.Push(websocket.Notice{UserID: n.adminID, Level: "error", Message: message})
}

func (n *noticeSink) consume() (success, failure string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	success, failure = n.lastSuccess, n.lastError
	n.lastSuccess, n.lastError = "", ""
	return success, failure
}

// loginNavigator records that the dashboard asked for a redirect to the login
// surface; the handler turns that into a 401 with a redirect hint.
type loginNavigator struct {
	mu       sync.Mutex
	redirect bool
}

func (n *loginNavigator) RedirectToLogin() {
	n.mu.Lock()
	n.redirect = true
	n.mu.Unlock()
}

func (n *loginNavigator) consume() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	redirect := n.redirect
	n.redirect = false
	return redirect
}

// reasonBox holds the rejection reason the request body carried, keyed by
// booking id. A booking with no deposited reason reads as a dismissed prompt.
type reasonBox struct {
	mu      sync.Mutex
	reasons map[uuid.UUID]string
}

func newReasonBox() *reasonBox {
	return &reasonBox{reasons: make(map[uuid.UUID]string)}
}

func (b *reasonBox) offer(id uuid.UUID, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reasons[id] = reason
}

func (b *reasonBox) RejectionReason(id uuid.UUID) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reason, ok := b.reasons[id]
	delete(b.reasons, id)
	return reason, ok
}

// adminPage is the server-side page state for one signed-in admin.
type adminPage struct {
	page    *dashboard.Page
	notify  *noticeSink
	nav     *loginNavigator
	reasons *reasonBox
}

var (
	pagesMu sync.Mutex
	pages   = make(map[uuid.UUID]*adminPage)
)

func getAdminPage(c *fiber.Ctx) (*adminPage, error) {
	session := claimsSession{c}
	principal, ok := session.CurrentPrincipal()
	if !ok {
		return nil, dashboard.ErrNotAuthenticated
	}

	pagesMu.Lock()
	existing, ok := pages[principal.ID]
	pagesMu.Unlock()
	if ok {
		return existing, nil
	}

	notify := &noticeSink{adminID: principal.ID}
	nav := &loginNavigator{}
	reasons := newReasonBox()
	api := services.NewAdminBookingService(database.DB, meetingBaseURL())
	created := &adminPage{
		page:    dashboard.NewPage(session, api, notify, nav, reasons),
		notify:  notify,
		nav:     nav,
		reasons: reasons,
	}

	if err := created.page.Load(c.UserContext()); err != nil {
		return nil, err
	}

	pagesMu.Lock()
	defer pagesMu.Unlock()
	if existing, ok := pages[principal.ID]; ok {
		created.page.Close()
		return existing, nil
	}
	pages[principal.ID] = created
	return created, nil
}

func dropAdminPage(adminID uuid.UUID) {
	pagesMu.Lock()
	defer pagesMu.Unlock()
	if existing, ok := pages[adminID]; ok {
		existing.page.Close()
		delete(pages, adminID)
	}
}

func GetDashboardBookings(c *fiber.Ctx) error {
	page, err := getAdminPage(c)
	if err != nil {
		return loginRedirect(c, err)
	}

	status := c.Query("status", dashboard.StatusAll)
	query := c.Query("q")
	return c.JSON(page.page.Visible(query, status))
}

func ApproveBooking(c *fiber.Ctx) error {
	page, err := getAdminPage(c)
	if err != nil {
		return loginRedirect(c, err)
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	page.page.Dispatcher().Approve(c.UserContext(), bookingID)
	return dispatchResult(c, page, bookingID)
}

type RejectBookingRequest struct {
	Reason *string `json:"reason"`
}

func RejectBooking(c *fiber.Ctx) error {
	page, err := getAdminPage(c)
	if err != nil {
		return loginRedirect(c, err)
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	var req RejectBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	cancelled := req.Reason == nil || *req.Reason == ""
	if !cancelled {
		page.reasons.offer(bookingID, *req.Reason)
	}
	page.page.Dispatcher().Reject(c.UserContext(), bookingID)

	if cancelled {
		// Dismissed prompt: the dispatcher aborted before any remote call.
		return c.JSON(fiber.Map{"cancelled": true})
	}
	return dispatchResult(c, page, bookingID)
}

func GenerateBookingMeetingLink(c *fiber.Ctx) error {
	page, err := getAdminPage(c)
	if err != nil {
		return loginRedirect(c, err)
	}
	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	page.page.Dispatcher().GenerateMeetingLink(c.UserContext(), bookingID)
	return dispatchResult(c, page, bookingID)
}

func SignOutAdmin(c *fiber.Ctx) error {
	session := claimsSession{c}
	principal, ok := session.CurrentPrincipal()
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Not authenticated", "redirect": "/login"})
	}

	dropAdminPage(principal.ID)
	if err := session.SignOut(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign out"})
	}
	return c.JSON(fiber.Map{"message": "Signed out successfully"})
}

func GenerateReport(c *fiber.Ctx) error {
	reportURL, err := services.GenerateBookingsReport(database.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate report"})
	}
	return c.JSON(fiber.Map{"report_url": reportURL})
}

// dispatchResult translates the dispatcher's notices and navigation intent
// into an HTTP response for REST callers; the websocket client already got
// the same notice as a toast.
func dispatchResult(c *fiber.Ctx, page *adminPage, bookingID uuid.UUID) error {
	success, failure := page.notify.consume()
	if page.nav.consume() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": failure, "redirect": "/login"})
	}
	if failure != "" {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": failure})
	}
	if success == "" {
		// Neither outcome: a duplicate action on this booking is still in flight.
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Another action on this booking is still in progress"})
	}

	for _, booking := range page.page.Visible("", dashboard.StatusAll).Bookings {
		if booking.ID == bookingID {
			return c.JSON(fiber.Map{"message": success, "booking": booking})
		}
	}
	return c.JSON(fiber.Map{"message": success})
}

func loginRedirect(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error(), "redirect": "/login"})
}

func meetingBaseURL() string {
	if base := config.Config("MEETING_BASE_URL"); base != "" {
		return base
	}
	return "https://meet.consultly.app"
}
