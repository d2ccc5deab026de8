package vault

import (
	"context"

	"cosign/core"
	"cosign/pkg/id"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Vault{})

		if err := tx.AutoMigrate(core.Vault{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// New new vault store
func New(db *db.DB) core.VaultStore {
	return &vaultStore{db: db}
}

type vaultStore struct {
	db *db.DB
}

func (s *vaultStore) List(ctx context.Context) ([]*core.Vault, error) {
	var vaults []*core.Vault
	if err := s.db.View().Order("created_at").Find(&vaults).Error; err != nil {
		return nil, err
	}

	return vaults, nil
}

func (s *vaultStore) Find(ctx context.Context, vaultID string) (*core.Vault, error) {
	var vault core.Vault
	if err := s.db.View().Where("id = ?", vaultID).First(&vault).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) Create(ctx context.Context, vault *core.Vault) error {
	if vault.ID == "" {
		vault.ID = id.New()
	}

	return s.db.Update().Create(vault).Error
}

func (s *vaultStore) Update(ctx context.Context, vault *core.Vault) error {
	updates := map[string]interface{}{
		"name":      vault.Name,
		"balance":   vault.Balance,
		"decimals":  vault.Decimals,
		"threshold": vault.Threshold,
		"signers":   vault.Signers,
		"version":   vault.Version + 1,
	}

	tx := s.db.Update().Model(vault).Where("version = ?", vault.Version).Updates(updates)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
