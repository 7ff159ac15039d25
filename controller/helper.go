package controller

import (
	"time"

	"github.com/xeonx/timeago"
)

var timeagoEnglish = timeago.NoMax(timeago.English)

// formatTimeAgo renders a timestamp as a relative string for the
// expanded row detail ("3 days ago"). Zero timestamps yield "".
func formatTimeAgo(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return timeagoEnglish.Format(t)
}
