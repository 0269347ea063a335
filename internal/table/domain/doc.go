// Package domain holds the table aggregate and the rules that govern it.
//
// A table is a shared game setup lobby: one admin opens it, other members
// request a seat through a six-digit join code, and the admin approves or
// rejects them before play. The package owns the pure decision logic for
// that lifecycle:
//
//   - join-code drawing and shape validation
//   - seat role transitions (admin, waiting, confirmed)
//   - turn-order normalization against the eligible seats
//   - board layout generation, random or from the standard preset
//   - phase transitions (not_started, started, finished) and the
//     operations each phase permits
//
// Functions here never touch storage. They take current state, return new
// state or a coded error, and leave persistence and concurrency control to
// the service and storage layers.
package domain
