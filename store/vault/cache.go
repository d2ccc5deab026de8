package vault

import (
	"context"
	"fmt"
	"time"

	"cosign/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache keeps vault snapshots for exp. A cached snapshot is stale until the
// vault is written through this store or forgotten.
func Cache(store core.VaultStore, size int, exp time.Duration) core.VaultStore {
	return &cacheVaultStore{
		VaultStore: store,
		cache:      gcache.New(size).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheVaultStore struct {
	core.VaultStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheVaultStore) Find(ctx context.Context, vaultID string) (*core.Vault, error) {
	key := s.vaultKey(vaultID)
	if v, err := s.cache.Get(key); err == nil {
		if vault, ok := v.(*core.Vault); ok {
			return vault.Clone(), nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		vault, err := s.VaultStore.Find(ctx, vaultID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(key, vault.Clone())
		return vault, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*core.Vault).Clone(), nil
}

func (s *cacheVaultStore) Create(ctx context.Context, vault *core.Vault) error {
	if err := s.VaultStore.Create(ctx, vault); err != nil {
		return err
	}

	s.Forget(vault.ID)
	return nil
}

func (s *cacheVaultStore) Update(ctx context.Context, vault *core.Vault) error {
	s.Forget(vault.ID)
	return s.VaultStore.Update(ctx, vault)
}

// Forget drop the cached snapshot of vault
func (s *cacheVaultStore) Forget(vaultID string) {
	s.cache.Remove(s.vaultKey(vaultID))
}

func (s *cacheVaultStore) vaultKey(vaultID string) string {
	return fmt.Sprintf("vault:id:%s", vaultID)
}
