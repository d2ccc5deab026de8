package wallet

import (
	"context"
	"math"
	"strings"

	"cosign/core"
	"cosign/pkg/id"

	"github.com/fox-one/pkg/logger"
)

// Config wallet service config
type Config struct {
	// AllowDeposit local backends credit vaults directly
	AllowDeposit bool
	// Decimals of new vaults
	Decimals int32
}

// New new wallet service
func New(
	vaults core.VaultStore,
	signers core.SignerStore,
	proposals core.ProposalStore,
	decisions core.DecisionService,
	cfg Config,
) core.WalletService {
	return &walletService{
		vaults:    vaults,
		signers:   signers,
		proposals: proposals,
		decisions: decisions,
		cfg:       cfg,
	}
}

type walletService struct {
	vaults    core.VaultStore
	signers   core.SignerStore
	proposals core.ProposalStore
	decisions core.DecisionService
	cfg       Config
}

// signerVault loads the vault and checks the caller may act on it
func (s *walletService) signerVault(ctx context.Context, vaultID string) (*core.Vault, string, error) {
	principal, err := core.CurrentPrincipal(ctx)
	if err != nil {
		return nil, "", err
	}

	vault, err := s.vaults.Find(ctx, vaultID)
	if err != nil {
		return nil, "", err
	}

	if !vault.IsSigner(principal) {
		return nil, "", core.ErrNotSigner
	}

	return vault, principal, nil
}

func (s *walletService) forget(vaultID string) {
	if cache, ok := s.vaults.(core.VaultCache); ok {
		cache.Forget(vaultID)
	}
}

func (s *walletService) CreateVault(ctx context.Context, name string, threshold uint8, signers []*core.Signer) (*core.Vault, error) {
	principal, err := core.CurrentPrincipal(ctx)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, core.NewValidationError("name", "required")
	}

	if len(signers) == 0 {
		return nil, core.NewValidationError("signers", "at least one signer required")
	}

	principals := make([]string, 0, len(signers))
	seen := make(map[string]bool, len(signers))
	for _, signer := range signers {
		if signer.Principal == "" {
			return nil, core.NewValidationError("signers", "empty principal")
		}

		if seen[signer.Principal] {
			return nil, core.NewValidationError("signers", "duplicate principal "+signer.Principal)
		}

		seen[signer.Principal] = true
		principals = append(principals, signer.Principal)
	}

	if threshold == 0 || int(threshold) > len(principals) {
		return nil, core.NewValidationError("threshold", "must be between 1 and the number of signers")
	}

	if !seen[principal] {
		return nil, core.ErrNotSigner
	}

	vault := &core.Vault{
		Name:      name,
		Decimals:  s.cfg.Decimals,
		Threshold: threshold,
		Signers:   principals,
	}

	log := logger.FromContext(ctx).WithField("principal", principal)
	if err := s.vaults.Create(ctx, vault); err != nil {
		log.WithError(err).Errorln("vaults.Create")
		return nil, err
	}

	for _, signer := range signers {
		signer.VaultID = vault.ID
		if err := s.signers.Save(ctx, signer); err != nil {
			log.WithError(err).Errorln("signers.Save")
			return nil, err
		}
	}

	log.Infof("vault %s created with %d/%d signers", vault.ID, threshold, len(principals))
	return vault, nil
}

func (s *walletService) Deposit(ctx context.Context, vaultID string, amount int64) (*core.Vault, error) {
	if _, err := core.CurrentPrincipal(ctx); err != nil {
		return nil, err
	}

	if !s.cfg.AllowDeposit {
		return nil, core.ErrOperationForbidden
	}

	if amount <= 0 {
		return nil, core.NewValidationError("amount", "must be positive")
	}

	vault, err := s.vaults.Find(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	if amount > math.MaxInt64-vault.Balance {
		return nil, core.NewValidationError("amount", "balance overflow")
	}

	vault.Balance += amount
	if err := s.vaults.Update(ctx, vault); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("vaults.Update")
		return nil, err
	}

	return vault, nil
}

func (s *walletService) propose(ctx context.Context, vault *core.Vault, principal string, action core.ActionType, content interface{}) (*core.Proposal, error) {
	p, err := core.NewProposal(vault, principal, action, content)
	if err != nil {
		return nil, err
	}

	p.TraceID = traceID(ctx, vault.ID, principal, action)
	if err := s.proposals.Create(ctx, p); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("proposals.Create")
		return nil, err
	}

	logger.FromContext(ctx).Infof("proposal %d (%s) created on vault %s by %s", p.ID, action, vault.ID, principal)
	return p, nil
}

// traceID retried requests map to the proposal created by the first attempt
func traceID(ctx context.Context, vaultID, principal string, action core.ActionType) string {
	if session, ok := core.SessionFrom(ctx); ok && session.RequestID != "" {
		return id.From(vaultID, principal, action.String(), session.RequestID)
	}

	return id.New()
}

func (s *walletService) ProposeTransfer(ctx context.Context, vaultID, recipient string, amount int64) (*core.Proposal, error) {
	vault, principal, err := s.signerVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	if recipient == "" {
		return nil, core.NewValidationError("recipient", "required")
	}

	if amount <= 0 {
		return nil, core.NewValidationError("amount", "must be positive")
	}

	return s.propose(ctx, vault, principal, core.ActionTypeTransfer, core.TransferAction{
		Recipient: recipient,
		Amount:    amount,
	})
}

func (s *walletService) InviteSigner(ctx context.Context, vaultID, invitee, name string) (*core.Proposal, error) {
	vault, principal, err := s.signerVault(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	if invitee == "" {
		return nil, core.NewValidationError("principal", "required")
	}

	if vault.IsSigner(invitee) {
		return nil, core.NewValidationError("principal", "already a signer")
	}

	return s.propose(ctx, vault, principal, core.ActionTypeInvite, core.InviteAction{
		Principal: invitee,
		Name:      name,
	})
}

func (s *walletService) Decide(ctx context.Context, vaultID string, proposalID uint64, approve bool) error {
	_, principal, err := s.signerVault(ctx, vaultID)
	if err != nil {
		return err
	}

	p, err := s.proposals.Find(ctx, vaultID, proposalID)
	if err != nil {
		return err
	}

	if p.Executed {
		return core.ErrProposalExecuted
	}

	if err := s.decisions.RecordDecision(ctx, vaultID, proposalID, approve, principal); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("decisions.RecordDecision")
		return err
	}

	return nil
}

func (s *walletService) Execute(ctx context.Context, vaultID string, proposalID uint64) (*core.Proposal, error) {
	if _, _, err := s.signerVault(ctx, vaultID); err != nil {
		return nil, err
	}

	p, err := s.proposals.Find(ctx, vaultID, proposalID)
	if err != nil {
		return nil, err
	}

	if p.Executed {
		return nil, core.ErrProposalExecuted
	}

	ready, err := s.decisions.IsExecutionReady(ctx, vaultID, proposalID)
	if err != nil {
		return nil, err
	}

	if !ready {
		return nil, core.ErrProposalNotReady
	}

	log := logger.FromContext(ctx).WithField("proposal", proposalID)
	if err := s.proposals.Execute(ctx, p); err != nil {
		log.WithError(err).Errorln("proposals.Execute")
		return nil, err
	}

	s.forget(vaultID)
	log.Infof("proposal executed, successful: %v", p.Successful)
	return p, nil
}

func (s *walletService) Refresh(ctx context.Context, vaultID string) error {
	if _, err := core.CurrentPrincipal(ctx); err != nil {
		return err
	}

	s.forget(vaultID)
	if err := s.decisions.Refresh(ctx, vaultID); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("decisions.Refresh")
		return err
	}

	return nil
}
