package decision

import (
	"context"

	"cosign/core"

	"github.com/fox-one/pkg/store/db"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Decision{})

		if err := tx.AutoMigrate(core.Decision{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_decisions_proposal", "vault_id", "proposal_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new decision store
func New(db *db.DB) core.DecisionStore {
	return &decisionStore{db: db}
}

type decisionStore struct {
	db *db.DB
}

func (s *decisionStore) Record(ctx context.Context, decision *core.Decision) error {
	return s.db.Update().Create(decision).Error
}

func (s *decisionStore) List(ctx context.Context, vaultID string, proposalID uint64) ([]*core.Decision, error) {
	decisions := []*core.Decision{}
	if err := s.db.View().
		Where("vault_id = ? AND proposal_id = ?", vaultID, proposalID).
		Order("id").
		Find(&decisions).Error; err != nil {
		return nil, err
	}

	return decisions, nil
}

// Refresh the database is its own authority
func (s *decisionStore) Refresh(ctx context.Context, vaultID string) error {
	return nil
}
