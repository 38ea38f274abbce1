package cli

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/stakescan/stake-scanner/internal/addrsource"
	"github.com/stakescan/stake-scanner/internal/services"
	"github.com/stakescan/stake-scanner/internal/types"
)

// ScanCmd runs a single scan over the addresses in a csv, txt or xlsx file
// and stores both the address list and the aggregated result.
// Usage: ./stake-scanner scan --file addresses.xlsx --config config.yml
func ScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the addresses from a file and store the aggregated stake stats",
		Args:  cobra.NoArgs,
		RunE:  scan,
	}

	cmd.Flags().String("file", "", "Address file (csv, txt or xlsx); first column, header row skipped")
	cmd.Flags().String("mode", string(types.ScanModeFull), "Scan mode recorded with the result")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func scan(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return err
	}
	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return err
	}

	addresses, err := addrsource.FromFile(file)
	if err != nil {
		return fmt.Errorf("failed to read addresses from %s: %w", file, err)
	}
	if len(addresses) == 0 {
		return errors.New("no valid addresses found in file")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	database, dbClient, err := newDbClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("failed to disconnect from db")
		}
	}()

	result, err := newService(cfg, dbClient).RunScan(ctx, services.ScanRequest{
		Addresses: addresses,
		Mode:      types.ScanModeOrDefault(mode),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Scan %s via %s\n", result.ScanID, result.Endpoint)
	fmt.Fprintf(out, "Addresses: %d scanned, %d succeeded, %d failed\n",
		result.TotalAddresses, result.SuccessCount, len(result.FailedAddresses))
	if result.Partial {
		fmt.Fprintln(out, "Scan timed out, result is partial")
	}
	fmt.Fprintf(out, "Active stake: %s across %d records\n", result.Stats.TotalStaked, len(result.ActiveRecords))
	fmt.Fprintf(out, "Unlocking within 2d / 7d / 15d: %s / %s / %s\n",
		result.Stats.Unlock2d, result.Stats.Unlock7d, result.Stats.Unlock15d)
	fmt.Fprintf(out, "LP pool balance: %s\n", result.LPBalance)

	return nil
}
