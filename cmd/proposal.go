package cmd

import (
	"fmt"
	"sort"
	"strconv"

	"cosign/core"
	"cosign/pkg/number"

	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

// proposalCmd represents the proposal command
var proposalCmd = &cobra.Command{
	Use:     "proposal <command>",
	Aliases: []string{"pp"},
	Short:   "manage proposals",
}

type proposalRow struct {
	ID         uint64 `json:"id"`
	Action     string `json:"action"`
	Creator    string `json:"creator"`
	State      string `json:"state"`
	Sentiment  string `json:"sentiment"`
	Approvals  int    `json:"approvals"`
	Rejections int    `json:"rejections"`
	Threshold  int    `json:"threshold"`
}

func printProposal(cmd *cobra.Command, p *core.Proposal, tally *core.Tally) {
	row := structs.Map(proposalRow{
		ID:         p.ID,
		Action:     p.Action.String(),
		Creator:    p.Creator,
		State:      tally.State.String(),
		Sentiment:  tally.Sentiment.String(),
		Approvals:  tally.Approvals,
		Rejections: tally.Rejections,
		Threshold:  tally.Threshold,
	})

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		cmd.Printf("%s: %v\n", k, row[k])
	}

	cmd.Printf("content: %s\n\n", string(p.Content))
}

func parseProposalID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid proposal id %q", arg)
	}

	return id, nil
}

var proposalListCmd = &cobra.Command{
	Use:   "list <vault_id>",
	Short: "list proposals of a vault",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		decisionz := provideDecisionService(s)
		vault, err := s.Vaults.Find(ctx, args[0])
		if err != nil {
			return err
		}

		proposals, err := s.Proposals.List(ctx, vault.ID)
		if err != nil {
			return err
		}

		for _, p := range proposals {
			tally, err := decisionz.Tally(ctx, vault, p)
			if err != nil {
				return err
			}

			printProposal(cmd, p, tally)
		}

		return nil
	},
}

var proposalShowCmd = &cobra.Command{
	Use:   "show <vault_id> <proposal_id>",
	Short: "show a proposal and its decisions",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		id, err := parseProposalID(args[1])
		if err != nil {
			return err
		}

		decisionz := provideDecisionService(s)
		vault, err := s.Vaults.Find(ctx, args[0])
		if err != nil {
			return err
		}

		p, err := s.Proposals.Find(ctx, vault.ID, id)
		if err != nil {
			return err
		}

		tally, err := decisionz.Tally(ctx, vault, p)
		if err != nil {
			return err
		}

		printProposal(cmd, p, tally)

		decisions, err := decisionz.GetDecisions(ctx, vault.ID, p.ID)
		if err != nil {
			return err
		}

		for _, d := range decisions {
			cmd.Printf("%s\t%s\tapprove=%v\n", d.CreatedAt.Format("2006-01-02 15:04:05"), d.Voter, d.Approve)
		}

		return nil
	},
}

var proposalTransferCmd = &cobra.Command{
	Use:   "transfer <vault_id> <recipient>",
	Short: "propose a transfer out of the vault",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		vault, err := s.Vaults.Find(ctx, args[0])
		if err != nil {
			return err
		}

		input, _ := cmd.Flags().GetString("amount")
		amount, err := number.ToMinor(number.Decimal(input), vault.Decimals)
		if err != nil {
			return err
		}

		walletz := provideWalletService(s, provideDecisionService(s))
		p, err := walletz.ProposeTransfer(ctx, vault.ID, args[1], amount)
		if err != nil {
			return err
		}

		cmd.Println(fmt.Sprintf("proposal %d created", p.ID))
		return nil
	},
}

func decideCmd(use string, approve bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <vault_id> <proposal_id>",
		Short: use + " a proposal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := sessionContext(cmd)
			s := provideStores()
			defer s.Close()

			id, err := parseProposalID(args[1])
			if err != nil {
				return err
			}

			walletz := provideWalletService(s, provideDecisionService(s))
			return walletz.Decide(ctx, args[0], id, approve)
		},
	}
}

var proposalExecuteCmd = &cobra.Command{
	Use:   "execute <vault_id> <proposal_id>",
	Short: "execute a ready proposal",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		id, err := parseProposalID(args[1])
		if err != nil {
			return err
		}

		walletz := provideWalletService(s, provideDecisionService(s))
		p, err := walletz.Execute(ctx, args[0], id)
		if err != nil {
			return err
		}

		cmd.Println("executed, sentiment", core.SentimentOf(p.Executed, p.Successful))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(proposalCmd)
	proposalCmd.AddCommand(
		proposalListCmd,
		proposalShowCmd,
		proposalTransferCmd,
		decideCmd("approve", true),
		decideCmd("reject", false),
		proposalExecuteCmd,
	)

	proposalTransferCmd.Flags().StringP("amount", "q", "", "amount")
}
