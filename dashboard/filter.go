package dashboard

import (
	"github.com/kimanzi254/consult_admin/models"
)

// StatusAll passes every record through the status filter.
const StatusAll = "all"

// ViewModel is what the presentation surface receives: the status-filtered
// rows plus the untouched free-text query. The text search is owned by the
// table widget, so the query is passed through here and never applied twice.
type ViewModel struct {
	Bookings []models.Booking `json:"bookings"`
	Query    string           `json:"query"`
}

// Visible derives the rows the table should show from the current snapshot.
// Original order is preserved.
func Visible(records []models.Booking, query, status string) ViewModel {
	if status == "" || status == StatusAll {
		return ViewModel{Bookings: records, Query: query}
	}

	filtered := make([]models.Booking, 0, len(records))
	for _, record := range records {
		if record.Status == status {
			filtered = append(filtered, record)
		}
	}
	return ViewModel{Bookings: filtered, Query: query}
}
