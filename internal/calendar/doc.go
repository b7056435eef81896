// Package calendar computes the weekly booking grid of a room.
//
// A Week is seven Sunday-start days by fifteen hourly slots (8:00 to 22:00).
// The Resolver decides which bookings occupy each (day, slot) cell under the
// configured OverlapPolicy and StatusFilter. Navigators hold the anchor date
// of one displayed calendar; a NavigatorSet keeps one per room.
//
// Week building and resolution are pure and safe for concurrent use.
package calendar
