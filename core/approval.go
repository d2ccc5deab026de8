package core

import "fmt"

// TallyPolicy decides how repeated decisions of one voter are counted
type TallyPolicy int

const (
	// TallyAll counts every recorded decision
	TallyAll TallyPolicy = iota
	// TallyLastPerVoter counts only the last decision of each voter
	TallyLastPerVoter
)

func (p TallyPolicy) String() string {
	switch p {
	case TallyAll:
		return "all"
	case TallyLastPerVoter:
		return "last_per_voter"
	}

	return fmt.Sprintf("policy(%d)", int(p))
}

// ProposalState Pending -> Ready -> Executed
type ProposalState int

const (
	ProposalStatePending ProposalState = iota
	ProposalStateReady
	ProposalStateExecuted
)

func (s ProposalState) String() string {
	switch s {
	case ProposalStatePending:
		return "pending"
	case ProposalStateReady:
		return "ready"
	case ProposalStateExecuted:
		return "executed"
	}

	return fmt.Sprintf("state(%d)", int(s))
}

// ClampThreshold min(threshold, signerCount), never below 1
func ClampThreshold(threshold, signerCount int) int {
	if threshold > signerCount {
		threshold = signerCount
	}

	if threshold < 1 {
		threshold = 1
	}

	return threshold
}

func (p TallyPolicy) effective(decisions []*Decision) []*Decision {
	if p != TallyLastPerVoter {
		return decisions
	}

	last := make(map[string]int, len(decisions))
	for idx, d := range decisions {
		last[d.Voter] = idx
	}

	out := make([]*Decision, 0, len(last))
	for idx, d := range decisions {
		if last[d.Voter] == idx {
			out = append(out, d)
		}
	}

	return out
}

func (p TallyPolicy) count(decisions []*Decision, approve bool) int {
	n := 0
	for _, d := range p.effective(decisions) {
		if d.Approve == approve {
			n++
		}
	}

	return n
}

// voters distinct voters with a matching decision, first seen first
func (p TallyPolicy) voters(decisions []*Decision, approve bool) []string {
	var (
		seen = make(map[string]bool)
		out  = []string{}
	)

	for _, d := range p.effective(decisions) {
		if d.Approve != approve || seen[d.Voter] {
			continue
		}

		seen[d.Voter] = true
		out = append(out, d.Voter)
	}

	return out
}

// ApprovalsCount decisions with approve = true
func (p TallyPolicy) ApprovalsCount(decisions []*Decision) int {
	return p.count(decisions, true)
}

// RejectionsCount decisions with approve = false
func (p TallyPolicy) RejectionsCount(decisions []*Decision) int {
	return p.count(decisions, false)
}

// HasVoterApproved under TallyAll any approving decision of voter counts,
// later rejections notwithstanding
func (p TallyPolicy) HasVoterApproved(decisions []*Decision, voter string) bool {
	for _, d := range p.effective(decisions) {
		if d.Voter == voter && d.Approve {
			return true
		}
	}

	return false
}

// Approvers distinct voters with an approving decision
func (p TallyPolicy) Approvers(decisions []*Decision) []string {
	return p.voters(decisions, true)
}

// Rejectors distinct voters with a rejecting decision
func (p TallyPolicy) Rejectors(decisions []*Decision) []string {
	return p.voters(decisions, false)
}

// IsExecutionReady approvals >= min(threshold, signerCount)
func (p TallyPolicy) IsExecutionReady(decisions []*Decision, threshold, signerCount int) bool {
	return p.ApprovalsCount(decisions) >= ClampThreshold(threshold, signerCount)
}

// Tally derived approval state of a proposal
type Tally struct {
	Approvals  int           `json:"approvals"`
	Rejections int           `json:"rejections"`
	Approvers  []string      `json:"approvers"`
	Rejectors  []string      `json:"rejectors"`
	Threshold  int           `json:"threshold"`
	Ready      bool          `json:"ready"`
	State      ProposalState `json:"state"`
	Sentiment  Sentiment     `json:"sentiment"`
}

// NewTally derive the tally of proposal p
func (p TallyPolicy) NewTally(proposal *Proposal, signerCount int, decisions []*Decision) *Tally {
	threshold := ClampThreshold(int(proposal.Threshold), signerCount)
	t := &Tally{
		Approvals:  p.ApprovalsCount(decisions),
		Rejections: p.RejectionsCount(decisions),
		Approvers:  p.Approvers(decisions),
		Rejectors:  p.Rejectors(decisions),
		Threshold:  threshold,
		Sentiment:  SentimentOf(proposal.Executed, proposal.Successful),
	}

	t.Ready = t.Approvals >= threshold
	switch {
	case proposal.Executed:
		t.State = ProposalStateExecuted
	case t.Ready:
		t.State = ProposalStateReady
	default:
		t.State = ProposalStatePending
	}

	return t
}
