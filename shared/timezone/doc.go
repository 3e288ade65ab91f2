// Package timezone keeps the application clock and stay-date parsing in one place.
//
// Timestamps (created_at, subscription expiry) are rendered in APP_TIMEZONE.
// Stay dates are calendar days and are stored as midnight UTC so that comparing
// two bookings never depends on the server timezone.
package timezone
