package memory

import (
	"context"

	"cosign/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
)

type vaultStore struct {
	*Store
}

func (s *vaultStore) List(ctx context.Context) ([]*core.Vault, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	vaults := make([]*core.Vault, 0, len(s.vaultOrder))
	for _, id := range s.vaultOrder {
		vaults = append(vaults, s.vaults[id].Clone())
	}

	return vaults, nil
}

func (s *vaultStore) Find(ctx context.Context, id string) (*core.Vault, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	vault, ok := s.vaults[id]
	if !ok {
		return nil, core.ErrVaultNotFound
	}

	return vault.Clone(), nil
}

func (s *vaultStore) Create(ctx context.Context, vault *core.Vault) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if vault.ID == "" {
		vault.ID = uuid.New()
	}

	if _, ok := s.vaults[vault.ID]; ok {
		return core.NewValidationError("id", "vault exists")
	}

	now := s.now()
	vault.CreatedAt = now
	vault.UpdatedAt = now

	s.vaults[vault.ID] = vault.Clone()
	s.vaultOrder = append(s.vaultOrder, vault.ID)
	return nil
}

func (s *vaultStore) Update(ctx context.Context, vault *core.Vault) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	current, ok := s.vaults[vault.ID]
	if !ok {
		return core.ErrVaultNotFound
	}

	if vault.Version != current.Version {
		return db.ErrOptimisticLock
	}

	vault.CreatedAt = current.CreatedAt
	vault.UpdatedAt = s.now()
	vault.Version = current.Version + 1
	s.vaults[vault.ID] = vault.Clone()
	return nil
}
