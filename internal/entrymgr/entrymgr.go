package entrymgr

import (
	"errors"
	"sync"

	"github.com/outofoffice3/org-setup/internal/shared"
)

type EntryMgr interface {
	// add entry
	Add(entry shared.SetupEntry) error
	// get entries
	GetEntries(status shared.SetupStatus) ([]shared.SetupEntry, error)
}

type _EntryMgr struct {
	mu        sync.Mutex
	succeeded []shared.SetupEntry
	skipped   []shared.SetupEntry
	failed    []shared.SetupEntry
}

// create new entry manager
func Init() EntryMgr {
	return &_EntryMgr{
		succeeded: []shared.SetupEntry{},
		skipped:   []shared.SetupEntry{},
		failed:    []shared.SetupEntry{},
	}
}

// add entry; entries arrive concurrently from the region workers
func (em *_EntryMgr) Add(entry shared.SetupEntry) error {
	em.mu.Lock()
	defer em.mu.Unlock()

	// based on status, add entry to corresponding slice
	switch entry.Status {
	case shared.StatusSucceeded:
		{
			em.succeeded = append(em.succeeded, entry)
		}
	case shared.StatusSkipped:
		{
			em.skipped = append(em.skipped, entry)
		}
	case shared.StatusFailed:
		{
			em.failed = append(em.failed, entry)
		}
	default:
		{
			return errors.New("unknown setup status" + "[" + string(entry.Status) + "]")
		}
	}
	return nil
}

// get entries
func (em *_EntryMgr) GetEntries(status shared.SetupStatus) ([]shared.SetupEntry, error) {
	em.mu.Lock()
	defer em.mu.Unlock()

	// based on status, return corresponding slice
	switch status {
	case shared.StatusSucceeded:
		{
			return em.succeeded, nil
		}
	case shared.StatusSkipped:
		{
			return em.skipped, nil
		}
	case shared.StatusFailed:
		{
			return em.failed, nil
		}
	default:
		{
			return nil, errors.New("unknown setup status" + "[" + string(status) + "]")
		}
	}
}
