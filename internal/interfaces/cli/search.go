package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/unicpatent/unic-ip/internal/application/lookup"
	"github.com/unicpatent/unic-ip/internal/domain/patent"
)

func newSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search patents by customer or business number",
	}
	cmd.AddCommand(newSearchRegisteredCmd(), newSearchApplicationCmd())
	return cmd
}

func newSearchRegisteredCmd() *cobra.Command {
	var byBusiness bool

	cmd := &cobra.Command{
		Use:   "registered <number>",
		Short: "Search registered rights and their annuity data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLookupService(cliCtx)

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			var result *lookup.RegisteredResult
			if byBusiness {
				result, err = svc.SearchRegisteredByBusiness(ctx, args[0])
			} else {
				result, err = svc.SearchRegisteredByCustomer(ctx, args[0])
			}
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(result)
			}
			return printRegisteredTable(result)
		},
	}

	cmd.Flags().BoolVar(&byBusiness, "business", false, "treat the number as a 10-digit business number (default: 12-digit customer number)")
	return cmd
}

func newSearchApplicationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "application <customer-number>",
		Short: "Search filed applications with bibliographic enrichment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := getCLIContext(cmd)
			if err != nil {
				return err
			}
			svc := buildLookupService(cliCtx)

			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()

			result, err := svc.SearchApplications(ctx, args[0])
			if err != nil {
				return err
			}

			if cliCtx.OutputFormat == "json" {
				return printJSON(result)
			}
			return printApplicationTable(result)
		},
	}
}

func searchRegistered(ctx context.Context, svc *lookup.Service, number string, byBusiness bool) (*lookup.RegisteredResult, error) {
	if byBusiness {
		return svc.SearchRegisteredByBusiness(ctx, number)
	}
	return svc.SearchRegisteredByCustomer(ctx, number)
}

func printRegisteredTable(result *lookup.RegisteredResult) error {
	fmt.Printf("출원인: %s  (총 %d건)\n\n", result.ApplicantName, result.TotalCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "출원번호\t등록번호\t등록일\t발명의명칭\t등록상태\t해당연차수\t해당연차료\t미납여부")
	for _, p := range result.Patents {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			patent.DisplayApplicationNumber(p.ApplicationNumber),
			p.RegistrationNumber,
			p.RegistrationDate,
			p.InventionName,
			p.DisplayStatus(),
			p.Annuity.AnnualYear,
			p.Annuity.AnnualFee,
			p.Annuity.Validity.Korean(),
		)
	}
	return w.Flush()
}

func printApplicationTable(result *lookup.ApplicationResult) error {
	fmt.Printf("출원인: %s  (총 %d건)\n\n", result.ApplicantName, result.TotalCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "출원번호\t등록번호\t출원일\t발명의 명칭\t현재상태\tPCT마감일")
	for _, rec := range result.Patents {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.ApplicationNumber,
			rec.RegistrationNumber,
			rec.ApplicationDate,
			rec.InventionName,
			rec.DisplayStatus(),
			rec.PCTDeadline,
		)
	}
	return w.Flush()
}
