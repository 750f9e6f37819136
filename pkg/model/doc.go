// Package model defines the domain records of the CMS and their database rows.
//
// User and PendingChange are the JSON shapes exchanged over the API and
// persisted by the file-backed stores. UserRow and PendingChangeRow are the
// GORM models used when the postgres backend is configured.
//
// # Database Schema
//
//   - users: accounts, one row per username
//   - pending_changes: moderation queue, ordered by its seq column
package model
