package memory

import (
	"context"

	"cosign/core"
)

type signerStore struct {
	*Store
}

func (s *signerStore) List(ctx context.Context, vaultID string) ([]*core.Signer, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	vault, ok := s.vaults[vaultID]
	if !ok {
		return []*core.Signer{}, nil
	}

	return s.listSigners(vault), nil
}

// listSigners follows vault.Signers order, principals without a saved
// record come back with an empty name
func (s *Store) listSigners(vault *core.Vault) []*core.Signer {
	named := make(map[string]*core.Signer)
	for _, signer := range s.signers[vault.ID] {
		named[signer.Principal] = signer
	}

	signers := make([]*core.Signer, 0, len(vault.Signers))
	for _, principal := range vault.Signers {
		if signer, ok := named[principal]; ok {
			signers = append(signers, cloneSigner(signer))
			continue
		}

		signers = append(signers, &core.Signer{
			VaultID:   vault.ID,
			Principal: principal,
		})
	}

	return signers
}

func (s *signerStore) Save(ctx context.Context, signer *core.Signer) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.saveSigner(signer)
	return nil
}

func (s *Store) saveSigner(signer *core.Signer) {
	signers := s.signers[signer.VaultID]
	for idx, exist := range signers {
		if exist.Principal == signer.Principal {
			signer.ID = exist.ID
			signer.CreatedAt = exist.CreatedAt

			updated := append([]*core.Signer(nil), signers...)
			updated[idx] = cloneSigner(signer)
			s.signers[signer.VaultID] = updated
			return
		}
	}

	s.signerSeq++
	signer.ID = s.signerSeq
	signer.CreatedAt = s.now()

	updated := make([]*core.Signer, 0, len(signers)+1)
	updated = append(updated, signers...)
	s.signers[signer.VaultID] = append(updated, cloneSigner(signer))
}
