// Package schedule models a courier's availability calendar.
//
// A Schedule merges a weekly recurring pattern with date-specific
// overrides: single-date overrides and date-range overrides, the latter
// typically representing vacations. Resolution runs a fixed chain of
// resolvers from most specific to least specific — range override, day
// override, weekly pattern — and the first resolver that covers the
// instant decides; when none does, the courier is unavailable.
//
// Working windows are half-open [start, end) intervals in minutes of the
// day. Windows wrapping midnight are not supported: such a window is a
// configuration error and resolution fails with ErrMalformedWindow
// instead of guessing.
package schedule
