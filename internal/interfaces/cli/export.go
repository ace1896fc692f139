package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/unicpatent/unic-ip/internal/application/export"
)

func newExportCmd() *cobra.Command {
	var (
		byBusiness bool
		sheetType  string
		outPath    string
	)

	cmd := &cobra.Command{
		Use:   "export <number>",
		Short: "Search and write the results to an xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLookupService(cliCtx)
			writer := export.NewWriter(cliCtx.Logger, nil)

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			var data []byte
			var sheet export.SheetType
			switch sheetType {
			case string(export.SheetRegistered):
				sheet = export.SheetRegistered
				result, err := searchRegistered(ctx, svc, args[0], byBusiness)
				if err != nil {
					return err
				}
				data, err = writer.Registered(result.Patents)
				if err != nil {
					return err
				}
			case string(export.SheetApplication):
				sheet = export.SheetApplication
				result, err := svc.SearchApplications(ctx, args[0])
				if err != nil {
					return err
				}
				data, err = writer.Applications(result.Patents, args[0])
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown export type %q (want registered or application)", sheetType)
			}

			if outPath == "" {
				outPath = export.Filename(sheet, time.Now())
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write workbook: %w", err)
			}
			fmt.Println("saved:", outPath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byBusiness, "business", false, "treat the number as a 10-digit business number")
	cmd.Flags().StringVarP(&sheetType, "type", "t", "registered", "export type (registered, application)")
	cmd.Flags().StringVar(&outPath, "out", "", "output file path (default: dated Korean filename)")
	return cmd
}
