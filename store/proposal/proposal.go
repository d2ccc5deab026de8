package proposal

import (
	"context"
	"time"

	"cosign/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/fox-one/pkg/uuid"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Proposal{})

		if err := tx.AutoMigrate(core.Proposal{}).Error; err != nil {
			return err
		}

		if err := tx.AddUniqueIndex("idx_proposals_trace", "trace_id").Error; err != nil {
			return err
		}

		if err := tx.AddIndex("idx_proposals_vault", "vault_id").Error; err != nil {
			return err
		}

		return nil
	})
}

// New new proposal store
func New(db *db.DB) core.ProposalStore {
	return &proposalStore{db: db}
}

type proposalStore struct {
	db *db.DB
}

func (s *proposalStore) List(ctx context.Context, vaultID string) ([]*core.Proposal, error) {
	var proposals []*core.Proposal
	if err := s.db.View().Where("vault_id = ?", vaultID).Order("id").Find(&proposals).Error; err != nil {
		return nil, err
	}

	return proposals, nil
}

func findProposal(tx *db.DB, vaultID string, id uint64) (*core.Proposal, error) {
	var proposal core.Proposal
	if err := tx.Update().Where("vault_id = ? AND id = ?", vaultID, id).First(&proposal).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrProposalNotFound
		}

		return nil, err
	}

	return &proposal, nil
}

func (s *proposalStore) Find(ctx context.Context, vaultID string, id uint64) (*core.Proposal, error) {
	var proposal core.Proposal
	if err := s.db.View().Where("vault_id = ? AND id = ?", vaultID, id).First(&proposal).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrProposalNotFound
		}

		return nil, err
	}

	return &proposal, nil
}

func (s *proposalStore) Create(ctx context.Context, proposal *core.Proposal) error {
	if proposal.TraceID == "" {
		proposal.TraceID = uuid.New()
	}

	return s.db.Update().Where("trace_id = ?", proposal.TraceID).FirstOrCreate(proposal).Error
}

func toUpdateParams(proposal *core.Proposal) map[string]interface{} {
	return map[string]interface{}{
		"executed":    proposal.Executed,
		"executed_at": proposal.ExecutedAt,
		"successful":  proposal.Successful,
	}
}

func updateProposal(tx *db.DB, proposal *core.Proposal) error {
	updates := toUpdateParams(proposal)
	updates["version"] = proposal.Version + 1

	// executed proposals are never rolled back
	query := tx.Update().Model(proposal).Where("version = ?", proposal.Version)
	if !proposal.Executed {
		query = query.Where("executed = ?", false)
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *proposalStore) Update(ctx context.Context, proposal *core.Proposal) error {
	return updateProposal(s.db, proposal)
}

func (s *proposalStore) Execute(ctx context.Context, proposal *core.Proposal) error {
	return s.db.Tx(func(tx *db.DB) error {
		current, err := findProposal(tx, proposal.VaultID, proposal.ID)
		if err != nil {
			return err
		}

		if current.Executed {
			return core.ErrProposalExecuted
		}

		var vault core.Vault
		if err := tx.Update().Where("id = ?", current.VaultID).First(&vault).Error; err != nil {
			if store.IsErrNotFound(err) {
				return core.ErrVaultNotFound
			}

			return err
		}

		successful, signer, err := current.Apply(&vault)
		if err != nil {
			return err
		}

		if successful {
			updates := map[string]interface{}{
				"balance": vault.Balance,
				"signers": vault.Signers,
				"version": gorm.Expr("version + 1"),
			}

			query := tx.Update().Model(&vault).Where("version = ?", vault.Version).Updates(updates)
			if query.Error != nil {
				return query.Error
			}

			if query.RowsAffected == 0 {
				return db.ErrOptimisticLock
			}

			if signer != nil {
				if err := tx.Update().Create(signer).Error; err != nil {
					return err
				}
			}
		}

		current.MarkExecuted(successful, time.Now())
		if err := updateProposal(tx, current); err != nil {
			return err
		}

		*proposal = *current
		return nil
	})
}
