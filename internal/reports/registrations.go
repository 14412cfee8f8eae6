package reports

import (
	"strconv"
	"time"

	"github.com/mrlokans/onboard/internal/entities"
)

// NewRegistrationsReport builds the standard registrations report from a
// list of users. Callers decide which users to include (e.g., most recent).
func NewRegistrationsReport(users []entities.User, generatedAt time.Time) Report {
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(user.ID), 10),
			user.Username,
			user.Email,
			string(user.Status),
			user.CreatedAt.Format("2006-01-02 15:04"),
		})
	}

	return Report{
		Title:       "Registered Users",
		GeneratedAt: generatedAt,
		Columns:     []string{"id", "username", "email", "status", "registered_at"},
		Rows:        rows,
	}
}
