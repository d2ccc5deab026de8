package signer

import (
	"context"

	"cosign/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Signer{})

		if err := tx.AutoMigrate(core.Signer{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_signers_vault_principal", "vault_id", "principal").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new signer store
func New(db *db.DB) core.SignerStore {
	return &signerStore{db: db}
}

type signerStore struct {
	db *db.DB
}

func (s *signerStore) List(ctx context.Context, vaultID string) ([]*core.Signer, error) {
	var vault core.Vault
	if err := s.db.View().Where("id = ?", vaultID).First(&vault).Error; err != nil {
		if store.IsErrNotFound(err) {
			return []*core.Signer{}, nil
		}

		return nil, err
	}

	var records []*core.Signer
	if err := s.db.View().Where("vault_id = ?", vaultID).Find(&records).Error; err != nil {
		return nil, err
	}

	named := make(map[string]*core.Signer, len(records))
	for _, signer := range records {
		named[signer.Principal] = signer
	}

	signers := make([]*core.Signer, 0, len(vault.Signers))
	for _, principal := range vault.Signers {
		signer, ok := named[principal]
		if !ok {
			signer = &core.Signer{VaultID: vaultID, Principal: principal}
		}

		signers = append(signers, signer)
	}

	return signers, nil
}

func (s *signerStore) Save(ctx context.Context, signer *core.Signer) error {
	tx := s.db.Update().Model(core.Signer{}).
		Where("vault_id = ? AND principal = ?", signer.VaultID, signer.Principal).
		Updates(map[string]interface{}{"name": signer.Name})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 0 {
		return nil
	}

	return s.db.Update().Create(signer).Error
}
