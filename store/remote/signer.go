package remote

import (
	"context"

	"cosign/core"
)

type signerStore struct {
	*Store
}

func (s *signerStore) List(ctx context.Context, vaultID string) ([]*core.Signer, error) {
	signers, err := s.client.GetOwners(ctx, vaultID)
	if err != nil {
		if isNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	return signers, nil
}

// Save the ledger owns the signer set, only existing owners are accepted
func (s *signerStore) Save(ctx context.Context, signer *core.Signer) error {
	signers, err := s.List(ctx, signer.VaultID)
	if err != nil {
		return err
	}

	for _, owner := range signers {
		if owner.Principal == signer.Principal {
			return nil
		}
	}

	return core.ErrOperationForbidden
}
