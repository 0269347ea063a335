// Package service exposes the table operations behind one TableService:
// creating tables, requesting and resolving membership, selecting the
// current table, reordering turns, generating boards, and moving tables
// through their phases.
//
// Methods load state through the storage interfaces, apply the rules from
// the domain package, and persist the outcome. Concurrent table edits are
// fenced by the store's version check; callers retry on conflict with
// freshly read state.
package service
