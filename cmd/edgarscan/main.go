// edgarscan — SEC EDGAR 13D/13F filing discovery and export.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/seenimoa/edgarscan/internal/config"
	"github.com/seenimoa/edgarscan/internal/edgar"
	"github.com/seenimoa/edgarscan/internal/export"
	"github.com/seenimoa/edgarscan/internal/pipeline"
	"github.com/seenimoa/edgarscan/pkg/models"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var (
	cfg    *config.Config
	client *edgar.Client
	pipe   *pipeline.Pipeline
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "edgarscan",
	Short: "edgarscan — SEC EDGAR 13D/13F filing discovery and export",
	Long: `edgarscan retrieves SEC EDGAR regulatory filings (Form 13D
beneficial-ownership disclosures and Form 13F institutional-holdings
reports) and exports them as flat CSV for tabular analysis.

Requests are rate limited under SEC's 10 req/s cap and carry the
identifying contact string from sec.contact. Known limitations: the
submissions API only exposes roughly the 1000 most recent filings per
company, failed requests are skipped rather than retried, so every
result set is best-effort rather than complete.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		client = edgar.New(cfg.SEC.Contact, edgar.WithRateLimit(cfg.SEC.RateLimit))
		pipe = pipeline.New(client)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("out", "", "write results to this CSV file instead of stdout")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(investorsCmd)
	rootCmd.AddCommand(filingsCmd)
	rootCmd.AddCommand(holdingsCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(lookupCmd)
	rootCmd.AddCommand(feedCmd)
	rootCmd.AddCommand(companyCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("edgarscan %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Sweep Command ---

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Discover institutional 13D filings over a date range",
	Long: `Walk every day's master index in the date range, collect 13D and
13D/A filings up to --max, and keep only filers classified as
institutional by name heuristics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end, err := dateRangeFlags(cmd)
		if err != nil {
			return err
		}
		max, _ := cmd.Flags().GetInt("max")
		if max == 0 {
			max = cfg.Sweep.MaxResults
		}

		fmt.Printf("Searching for 13D filings from %s to %s\n",
			start.Format("2006-01-02"), end.Format("2006-01-02"))

		filings, err := pipe.DateRangeSweep(cmd.Context(), start, end, max)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d institutional 13D filings\n", len(filings))
		return emitFilings(cmd, filings)
	},
}

func init() {
	sweepCmd.Flags().String("start", "", "start date YYYY-MM-DD (default: 30 days ago)")
	sweepCmd.Flags().String("end", "", "end date YYYY-MM-DD (default: today)")
	sweepCmd.Flags().Int("max", 0, "global result cap (default: sweep.max_results)")
}

// --- Investors Command ---

var investorsCmd = &cobra.Command{
	Use:   "investors",
	Short: "Sweep 13D filings of major institutional investors",
	Long: `Fetch recent 13D and 13D/A filings for each investor in the
built-in catalog of major institutional filers. Filings are tagged
institutional directly; no name classification is needed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		startDate, _ := cmd.Flags().GetString("start")
		endDate, _ := cmd.Flags().GetString("end")
		perInvestor, _ := cmd.Flags().GetInt("per-investor")
		if perInvestor == 0 {
			perInvestor = cfg.Sweep.PerInvestorLimit
		}

		investors := pipeline.MajorInvestors()
		fmt.Printf("Searching filings for %d major institutional investors...\n", len(investors))

		filings := pipe.TargetedSweep(cmd.Context(), investors, startDate, endDate, perInvestor)

		fmt.Printf("Found %d filings from major institutional investors\n", len(filings))
		return emitFilings(cmd, filings)
	},
}

func init() {
	investorsCmd.Flags().String("start", "", "start date YYYY-MM-DD")
	investorsCmd.Flags().String("end", "", "end date YYYY-MM-DD")
	investorsCmd.Flags().Int("per-investor", 0, "result cap per investor (default: sweep.per_investor_limit)")
}

// --- Filings Command ---

var filingsCmd = &cobra.Command{
	Use:   "filings [ticker]",
	Short: "Search 13D filings for one company by ticker or CIK",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticker := ""
		if len(args) > 0 {
			ticker = args[0]
		}
		cik, _ := cmd.Flags().GetString("cik")
		startDate, _ := cmd.Flags().GetString("start")
		endDate, _ := cmd.Flags().GetString("end")
		limit, _ := cmd.Flags().GetInt("limit")

		filings, err := client.Search13D(cmd.Context(), ticker, cik, startDate, endDate, limit)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d 13D filings\n", len(filings))
		return emitFilings(cmd, filings)
	},
}

func init() {
	filingsCmd.Flags().String("cik", "", "company CIK (alternative to ticker)")
	filingsCmd.Flags().String("start", "", "start date YYYY-MM-DD")
	filingsCmd.Flags().String("end", "", "end date YYYY-MM-DD")
	filingsCmd.Flags().Int("limit", 100, "maximum results")
}

// --- Holdings Command ---

var holdingsCmd = &cobra.Command{
	Use:   "holdings [cik]",
	Short: "Fetch 13F-HR holdings for an institutional filer",
	Long: `Locate the filer's most recent 13F-HR filings, resolve each
information table document, and export the holdings. Values are
reported in whole dollars (SEC files them in thousands).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik := args[0]
		numFilings, _ := cmd.Flags().GetInt("filings")
		if numFilings == 0 {
			numFilings = cfg.Sweep.HoldingsFilings
		}

		fmt.Printf("Searching for 13F filings for CIK: %s\n", cik)
		holdings, err := pipe.FetchHoldings(cmd.Context(), cik, numFilings)
		if err != nil {
			return err
		}

		fmt.Printf("Found %d holdings\n", len(holdings))
		return emitHoldings(cmd, holdings)
	},
}

func init() {
	holdingsCmd.Flags().Int("filings", 0, "number of recent 13F-HR filings to fetch (default: sweep.holdings_filings)")
}

// --- Details Command ---

var detailsCmd = &cobra.Command{
	Use:   "details [cik] [accession]",
	Short: "Fetch the primary document of one 13D filing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		url, content, err := pipe.FilingDetails(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Document: %s\n\n", url)
		fmt.Println(content)
		return nil
	},
}

// --- Lookup Command ---

var lookupCmd = &cobra.Command{
	Use:   "lookup [ticker]",
	Short: "Resolve a ticker symbol to its CIK",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cik, err := client.LookupCIK(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s -> CIK %s\n", args[0], edgar.PadCIK(cik))
		return nil
	},
}

// --- Feed Command ---

var feedCmd = &cobra.Command{
	Use:   "feed [cik]",
	Short: "Show a company's latest filings from the EDGAR Atom feed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		form, _ := cmd.Flags().GetString("form")
		count, _ := cmd.Flags().GetInt("count")

		entries, err := client.CompanyFeed(cmd.Context(), args[0], form, count)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Printf("%-10s %-12s %s\n", e.FormType, e.Updated, e.Title)
		}
		return nil
	},
}

func init() {
	feedCmd.Flags().String("form", "", "narrow the feed to one form type (e.g. 13D)")
	feedCmd.Flags().Int("count", 40, "number of feed entries")
}

// --- Company Search Command ---

var companyCmd = &cobra.Command{
	Use:   "company [name]",
	Short: "Search EDGAR for companies by name and print their CIKs",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results, err := client.SearchCompanies(cmd.Context(), args[0], 25)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("%-12s %s\n", r.CIK, r.Name)
		}
		if len(results) == 0 {
			fmt.Println("No companies matched")
		}
		return nil
	},
}

// --- Output helpers ---

// outPath resolves the --out flag against the configured output dir.
// Empty means stdout.
func outPath(cmd *cobra.Command) string {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return ""
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(cfg.Output.Dir, out)
}

func emitFilings(cmd *cobra.Command, filings []models.Filing) error {
	path := outPath(cmd)
	if path == "" {
		return export.WriteFilings(os.Stdout, filings)
	}
	if err := export.FilingsToFile(path, filings); err != nil {
		return err
	}
	fmt.Printf("Saved %d filings to %s\n", len(filings), path)
	return nil
}

func emitHoldings(cmd *cobra.Command, holdings []models.Holding) error {
	path := outPath(cmd)
	if path == "" {
		return export.WriteHoldings(os.Stdout, holdings)
	}
	if err := export.HoldingsToFile(path, holdings); err != nil {
		return err
	}
	fmt.Printf("Saved %d holdings to %s\n", len(holdings), path)
	return nil
}

// dateRangeFlags parses --start/--end with the original 30-day default
// window.
func dateRangeFlags(cmd *cobra.Command) (time.Time, time.Time, error) {
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")

	end := time.Now()
	start := end.AddDate(0, 0, -30)
	var err error
	if startStr != "" {
		if start, err = time.Parse("2006-01-02", startStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --start date %q: %w", startStr, err)
		}
	}
	if endStr != "" {
		if end, err = time.Parse("2006-01-02", endStr); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid --end date %q: %w", endStr, err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s precedes start date %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return start, end, nil
}
