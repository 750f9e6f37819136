package file

import (
	"fmt"
	"os"

	"github.com/velumpress/cms/pkg/server/store"
)

// Ensure HealthStore implements store.HealthStore
var _ store.HealthStore = (*HealthStore)(nil)

// HealthStore checks that the data and content directories are reachable
type HealthStore struct {
	dirs []string
}

// NewHealthStore creates a new HealthStore
func NewHealthStore(dirs ...string) *HealthStore {
	return &HealthStore{dirs: dirs}
}

// CheckConnectivity verifies every directory exists
func (s *HealthStore) CheckConnectivity() error {
	for _, dir := range s.dirs {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("storage unavailable: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("storage unavailable: %s is not a directory", dir)
		}
	}
	return nil
}
