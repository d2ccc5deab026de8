package remote

import (
	"context"

	"cosign/core"

	"golang.org/x/sync/errgroup"
)

type vaultStore struct {
	*Store
}

func (s *vaultStore) List(ctx context.Context) ([]*core.Vault, error) {
	ids := s.tracked()
	vaults := make([]*core.Vault, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	for idx, id := range ids {
		idx, id := idx, id
		g.Go(func() error {
			vault, err := s.Find(ctx, id)
			if err != nil {
				return err
			}

			vaults[idx] = vault
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vaults, nil
}

func (s *vaultStore) Find(ctx context.Context, id string) (*core.Vault, error) {
	vault, err := s.client.GetAccount(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	if vault.ID == "" {
		vault.ID = id
	}

	return vault, nil
}

func (s *vaultStore) Create(ctx context.Context, vault *core.Vault) error {
	if err := s.client.CreateAccount(ctx, vault); err != nil {
		return err
	}

	s.track(vault.ID)
	return nil
}

// Update balances and signers only change through executed proposals
func (s *vaultStore) Update(ctx context.Context, vault *core.Vault) error {
	return core.ErrOperationForbidden
}
