// Package store owns the process-wide dashboard state. All mutation funnels
// through Update, which serializes engine operations behind one lock and
// writes every dirty collection back to the key-value layer in full, the same
// whole-collection overwrite the original storage lifecycle performs.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	pkgerrors "github.com/mariodelgado/aquatrack-backend/pkg/errors"
	"github.com/mariodelgado/aquatrack-backend/pkg/kv"
	"github.com/mariodelgado/aquatrack-backend/pkg/logger"
)

// Store hydrates state from the key-value layer at boot and keeps it in sync.
type Store struct {
	mu      sync.Mutex
	kv      kv.Store
	logg    *logger.Logger
	version string
	state   *State
}

// Open hydrates every collection and applies the one-time version guard:
// when the persisted app_version marker differs from expectedVersion, all
// collections are wiped back to defaults and the marker is rewritten.
func Open(ctx context.Context, kvs kv.Store, expectedVersion string, logg *logger.Logger) (*Store, error) {
	if kvs == nil {
		return nil, fmt.Errorf("kv store required")
	}
	if expectedVersion == "" {
		return nil, fmt.Errorf("expected version required")
	}

	s := &Store{kv: kvs, logg: logg, version: expectedVersion}

	stored, err := s.loadVersion(ctx)
	if err != nil {
		return nil, err
	}

	if stored != expectedVersion {
		if logg != nil {
			ctx := logg.WithFields(ctx, map[string]any{
				"stored_version":   stored,
				"expected_version": expectedVersion,
			})
			logg.Warn(ctx, "version marker mismatch, resetting store to defaults")
		}
		if err := s.reset(ctx); err != nil {
			return nil, err
		}
		return s, nil
	}

	if err := s.hydrate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Update runs fn against the live state under the store lock, then persists
// every collection fn marked dirty. When fn fails no persistence happens;
// engines pre-validate before mutating, so a failed fn leaves state intact.
func (s *Store) Update(ctx context.Context, fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.resetDirty()
	if err := fn(s.state); err != nil {
		s.state.resetDirty()
		return err
	}
	return s.persistDirty(ctx)
}

// View runs fn against the state under the lock without persisting. fn must
// not retain references past its return.
func (s *Store) View(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.state)
}

// Ping reports whether the persistence layer is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

func (s *Store) loadVersion(ctx context.Context) (string, error) {
	raw, found, err := s.kv.Get(ctx, KeyAppVersion)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading version marker")
	}
	if !found {
		return "", nil
	}
	var version string
	if err := json.Unmarshal(raw, &version); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding version marker")
	}
	return version, nil
}

func (s *Store) reset(ctx context.Context) error {
	s.state = newState()
	s.state.Recipes = defaultRecipes()
	s.state.rebuildIndexes()

	for _, key := range collectionKeys {
		if err := s.persistCollection(ctx, key); err != nil {
			return err
		}
	}

	marker, err := json.Marshal(s.version)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding version marker")
	}
	if err := s.kv.Set(ctx, KeyAppVersion, marker); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting version marker")
	}
	return nil
}

func (s *Store) hydrate(ctx context.Context) error {
	s.state = newState()

	load := func(key string, dest any) error {
		raw, found, err := s.kv.Get(ctx, key)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading collection "+key)
		}
		if !found {
			return nil
		}
		if err := json.Unmarshal(raw, dest); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decoding collection "+key)
		}
		return nil
	}

	if err := load(KeyInventory, &s.state.Inventory); err != nil {
		return err
	}
	if err := load(KeyTransactions, &s.state.Transactions); err != nil {
		return err
	}
	if err := load(KeyProduction, &s.state.Production); err != nil {
		return err
	}
	if err := load(KeyCustomers, &s.state.Customers); err != nil {
		return err
	}
	if err := load(KeyRecipes, &s.state.Recipes); err != nil {
		return err
	}
	if err := load(KeyEmployees, &s.state.Employees); err != nil {
		return err
	}

	// Absent recipes key means first boot: seed the preset book.
	if _, found, err := s.kv.Get(ctx, KeyRecipes); err == nil && !found {
		s.state.Recipes = defaultRecipes()
	}

	s.state.rebuildIndexes()
	return nil
}

func (s *Store) persistDirty(ctx context.Context) error {
	for _, key := range collectionKeys {
		if !s.state.dirty[key] {
			continue
		}
		if err := s.persistCollection(ctx, key); err != nil {
			return err
		}
	}
	s.state.resetDirty()
	return nil
}

func (s *Store) persistCollection(ctx context.Context, key string) error {
	var payload any
	switch key {
	case KeyInventory:
		payload = s.state.Inventory
	case KeyTransactions:
		payload = s.state.Transactions
	case KeyProduction:
		payload = s.state.Production
	case KeyCustomers:
		payload = s.state.Customers
	case KeyRecipes:
		payload = s.state.Recipes
	case KeyEmployees:
		payload = s.state.Employees
	default:
		return fmt.Errorf("unknown collection key %q", key)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding collection "+key)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting collection "+key)
	}
	return nil
}
