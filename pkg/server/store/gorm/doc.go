// Package gorm provides GORM-based implementations of the store interfaces
// defined in the parent store package.
//
// Only users and the moderation queue have a database form; the schema is
// created by the migrations under db/migrations (`cmsctl db migrate`).
package gorm
