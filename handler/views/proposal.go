package views

import (
	"encoding/json"
	"time"

	"cosign/core"
	"cosign/pkg/number"
)

type (
	Proposal struct {
		ID         uint64          `json:"id"`
		CreatedAt  time.Time       `json:"created_at"`
		ExecutedAt *time.Time      `json:"executed_at,omitempty"`
		VaultID    string          `json:"vault_id"`
		Creator    string          `json:"creator"`
		Action     string          `json:"action"`
		Content    json.RawMessage `json:"content"`
		Amount     string          `json:"amount,omitempty"`
		Executed   bool            `json:"executed"`
		Successful bool            `json:"successful"`
		State      string          `json:"state"`
		Sentiment  string          `json:"sentiment"`
		Threshold  int             `json:"threshold"`
		Approvals  int             `json:"approvals"`
		Rejections int             `json:"rejections"`
		Approvers  []string        `json:"approvers"`
		Rejectors  []string        `json:"rejectors"`
	}

	Decision struct {
		Voter     string    `json:"voter"`
		Approve   bool      `json:"approve"`
		CreatedAt time.Time `json:"created_at"`
	}
)

func ProposalView(v *core.Vault, p *core.Proposal, tally *core.Tally) Proposal {
	view := Proposal{
		ID:         p.ID,
		CreatedAt:  p.CreatedAt,
		VaultID:    p.VaultID,
		Creator:    p.Creator,
		Action:     p.Action.String(),
		Content:    json.RawMessage(p.Content),
		Executed:   p.Executed,
		Successful: p.Successful,
		State:      tally.State.String(),
		Sentiment:  tally.Sentiment.String(),
		Threshold:  tally.Threshold,
		Approvals:  tally.Approvals,
		Rejections: tally.Rejections,
		Approvers:  tally.Approvers,
		Rejectors:  tally.Rejectors,
	}

	if p.ExecutedAt.Valid {
		view.ExecutedAt = &p.ExecutedAt.Time
	}

	if p.Action == core.ActionTypeTransfer {
		if action, err := p.TransferAction(); err == nil {
			view.Amount = number.FromMinor(action.Amount, v.Decimals).String()
		}
	}

	return view
}

func DecisionViews(decisions []*core.Decision) []Decision {
	items := make([]Decision, len(decisions))
	for i, d := range decisions {
		items[i] = Decision{
			Voter:     d.Voter,
			Approve:   d.Approve,
			CreatedAt: d.CreatedAt,
		}
	}

	return items
}
