package store

// HealthStore provides health check operations
type HealthStore interface {
	// CheckConnectivity verifies the backing storage is reachable
	CheckConnectivity() error
}
