package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/unicpatent/unic-ip/internal/domain/annuity"
)

func newAnnuityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "annuity",
		Short: "Statutory annuity schedule tools",
	}
	cmd.AddCommand(newAnnuityScheduleCmd())
	return cmd
}

func newAnnuityScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule <registration-date>",
		Short: "Print the 20-year statutory fee schedule for a registration date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}

			now := time.Now()
			entries, err := annuity.Schedule(args[0], now)
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(entries)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "연차\t납부마감일\t연차료(원)\t상태")
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
					e.Year, e.DueDate.Format("2006-01-02"), e.Fee, e.Window.Korean())
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if next, ok := annuity.NextDue(entries, now); ok {
				fmt.Printf("\n다음 납부: %d연차 %s (%d원)\n",
					next.Year, next.DueDate.Format("2006-01-02"), next.Fee)
			}
			return nil
		},
	}
}
