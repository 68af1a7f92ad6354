package disclaimer

import (
	"fmt"
	"math"
	"time"

	"github.com/ppiankov/govgate/internal/model"
)

// CheckStaleness classifies the age of lastUpdated against the current time
func CheckStaleness(lastUpdated string) model.Staleness {
	return CheckStalenessAt(lastUpdated, time.Now())
}

// CheckStalenessAt classifies the age of lastUpdated against now.
// An unreadable date is treated as stale at the error level.
func CheckStalenessAt(lastUpdated string, now time.Time) model.Staleness {
	updated, ok := ParseISO8601(lastUpdated)
	if !ok {
		return model.Staleness{
			Level:           model.StaleError,
			DaysSinceUpdate: -1,
			Message:         "Last updated date is missing or unreadable. Update required.",
		}
	}

	days := int(math.Floor(now.Sub(updated).Hours() / 24))

	switch {
	case days < model.StaleWarningDays:
		return model.Staleness{
			Level:           model.StaleCurrent,
			DaysSinceUpdate: days,
			Message:         fmt.Sprintf("Data is current (updated %d days ago)", days),
		}
	case days < model.StaleErrorDays:
		return model.Staleness{
			Level:           model.StaleWarning,
			DaysSinceUpdate: days,
			Message:         fmt.Sprintf("Data is %d days old. Review recommended.", days),
		}
	case days < model.StaleCriticalDays:
		return model.Staleness{
			Level:           model.StaleError,
			DaysSinceUpdate: days,
			Message:         fmt.Sprintf("Data is %d days old. Update required.", days),
		}
	default:
		return model.Staleness{
			Level:           model.StaleError,
			DaysSinceUpdate: days,
			Message:         fmt.Sprintf("Data is %d days old. Critical update required.", days),
		}
	}
}
