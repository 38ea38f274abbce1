package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stakescan/stake-scanner/internal/db"
)

func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the last stored scan result as JSON",
		Args:  cobra.NoArgs,
		RunE:  show,
	}

	cmd.Flags().Bool("addresses", false, "Print the stored address list instead")

	return cmd
}

func show(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	showAddresses, err := cmd.Flags().GetBool("addresses")
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, dbClient, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Disconnect(ctx) //nolint:errcheck

	var value any
	if showAddresses {
		value, err = db.LoadAddressList(ctx, dbClient)
	} else {
		value, err = db.LoadScanResult(ctx, dbClient)
	}
	if db.IsNotFoundError(err) {
		return fmt.Errorf("nothing stored yet: %w", err)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
