// Package snapshot keeps the in-memory copy of rooms and bookings served by
// the board. The copy is only ever replaced whole, by Store.Refresh, which the
// kafka and redis listeners, the cron poller and the manual refresh endpoint
// all call.
package snapshot
