package timezone

import (
	"errors"
	"rentopia/config"
	"rentopia/shared/constant"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

var ErrInvalidDate = errors.New("dates must be YYYY-MM-DD or RFC3339")

var appLocation atomic.Pointer[time.Location]

func init() {
	name := config.Get().App.Timezone
	if name == constant.Empty {
		log.Warn().Msg("No timezone configured, using UTC")
		SetLocation(time.UTC)

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("Failed to load timezone, falling back to UTC")
		SetLocation(time.UTC)

		return
	}

	SetLocation(loc)
	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// SetLocation replaces the application timezone. A nil location means UTC.
func SetLocation(loc *time.Location) {
	if loc == nil {
		loc = time.UTC
	}

	appLocation.Store(loc)
}

func location() *time.Location {
	if loc := appLocation.Load(); loc != nil {
		return loc
	}

	return time.UTC
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(location())
}

// Today returns the current calendar day in the application timezone, stored the
// way stay dates are: midnight UTC.
func Today() time.Time {
	now := Now()

	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Format renders t in the application timezone.
func Format(t time.Time, layout string) string {
	return t.In(location()).Format(layout)
}

// ParseDate reads a stay date. Both YYYY-MM-DD and RFC3339 are accepted and the
// result is midnight UTC of the calendar day written by the client.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if t, err := time.Parse(constant.DateOnlyFormat, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(constant.DateFormat, value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
