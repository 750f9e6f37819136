// Package store provides storage abstractions for the CMS server.
//
// This package defines interfaces for persistence, allowing the server
// endpoints to be decoupled from the specific storage implementation.
// Content always lives in JSON files; users and the moderation queue can be
// kept in JSON files (store/file) or postgres (store/gorm).
//
// # Available Stores
//
//   - UsersStore: user accounts
//   - PendingStore: the moderation queue of unapplied changes
//   - ContentStore: countries, documents, sections and nested records
//   - HealthStore: storage connectivity
//
// # Usage
//
//	users := file.NewUsersStore(cfg.UsersFile())
//	u, err := users.GetUserByUsername("admin")
//	if err != nil {
//	    if errors.Is(err, store.ErrUserNotFound) {
//	        // Handle not found
//	    }
//	}
package store
