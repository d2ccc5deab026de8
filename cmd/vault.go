package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"cosign/core"
	"cosign/handler/views"
	"cosign/pkg/number"

	"github.com/fox-one/pkg/qrcode"
	"github.com/spf13/cobra"
)

var vaultCmd = &cobra.Command{
	Use:     "vault <command>",
	Aliases: []string{"v"},
	Short:   "manage vaults",
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}

	cmd.Println(string(data))
	return nil
}

var vaultListCmd = &cobra.Command{
	Use:   "list",
	Short: "list vaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		vaults, err := s.Vaults.List(ctx)
		if err != nil {
			return err
		}

		for _, v := range vaults {
			balance := number.FromMinor(v.Balance, v.Decimals)
			cmd.Printf("%s\t%s\t%s\t%d/%d\n", v.ID, v.Name, balance, v.EffectiveThreshold(), v.SignerCount())
		}

		return nil
	},
}

var vaultShowCmd = &cobra.Command{
	Use:   "show <vault_id>",
	Short: "show vault with its signers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		vault, err := s.Vaults.Find(ctx, args[0])
		if err != nil {
			return err
		}

		signers, err := s.Signers.List(ctx, vault.ID)
		if err != nil {
			return err
		}

		if err := printJSON(cmd, views.VaultView(vault, signers)); err != nil {
			return err
		}

		if qr, _ := cmd.Flags().GetBool("qr"); qr {
			qrcode.Fprint(cmd.OutOrStdout(), vault.ID)
		}

		return nil
	},
}

var vaultCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "create a vault, signers as principal[:name]",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		name, _ := cmd.Flags().GetString("name")
		threshold, _ := cmd.Flags().GetUint8("threshold")
		values, _ := cmd.Flags().GetStringSlice("signer")

		signers := make([]*core.Signer, 0, len(values))
		for _, v := range values {
			parts := strings.SplitN(v, ":", 2)
			signer := &core.Signer{Principal: parts[0]}
			if len(parts) == 2 {
				signer.Name = parts[1]
			}

			signers = append(signers, signer)
		}

		walletz := provideWalletService(s, provideDecisionService(s))
		vault, err := walletz.CreateVault(ctx, name, threshold, signers)
		if err != nil {
			return err
		}

		return printJSON(cmd, views.VaultView(vault, signers))
	},
}

var vaultDepositCmd = &cobra.Command{
	Use:   "deposit <vault_id>",
	Short: "credit a local vault",
	Args:  cobra.ExactArgs(1),
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
		vault, err = walletz.Deposit(ctx, vault.ID, amount)
		if err != nil {
			return err
		}

		cmd.Println("balance", number.FromMinor(vault.Balance, vault.Decimals))
		return nil
	},
}

var vaultInviteCmd = &cobra.Command{
	Use:   "invite <vault_id> <principal>",
	Short: "propose a new signer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		name, _ := cmd.Flags().GetString("name")
		walletz := provideWalletService(s, provideDecisionService(s))
		p, err := walletz.InviteSigner(ctx, args[0], args[1], name)
		if err != nil {
			return err
		}

		cmd.Println(fmt.Sprintf("proposal %d created", p.ID))
		return nil
	},
}

var vaultRefreshCmd = &cobra.Command{
	Use:   "refresh <vault_id>",
	Short: "pull proposals and confirmations from the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := sessionContext(cmd)
		s := provideStores()
		defer s.Close()

		walletz := provideWalletService(s, provideDecisionService(s))
		return walletz.Refresh(ctx, args[0])
	},
}

func init() {
	rootCmd.AddCommand(vaultCmd)
	vaultCmd.AddCommand(vaultListCmd, vaultShowCmd, vaultCreateCmd, vaultDepositCmd, vaultInviteCmd, vaultRefreshCmd)

	vaultShowCmd.Flags().Bool("qr", false, "print the vault id as qrcode")

	vaultCreateCmd.Flags().String("name", "", "vault name")
	vaultCreateCmd.Flags().Uint8("threshold", 1, "approvals required to execute")
	vaultCreateCmd.Flags().StringSlice("signer", nil, "signer principal[:name], repeatable")

	vaultDepositCmd.Flags().StringP("amount", "q", "", "amount")
	vaultInviteCmd.Flags().String("name", "", "display name of the new signer")
}
