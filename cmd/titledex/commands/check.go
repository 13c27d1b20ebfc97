package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/risk"
	"github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	checkuc "github.com/thesisdesk/titledex/internal/usecase/check"
)

var (
	checkFile string
	checkURL  string
	checkTopK int
)

var checkCmd = &cobra.Command{
	Use:   "check <title>",
	Short: "Check one title against a CSV table without a server",
	Long: `Check a proposed title against prior titles from a local CSV file or a
published sheet URL. Uses the stock dataset when neither is given.

Examples:
  titledex check "Machine Learning in Healthcare Systems" -f titles.csv
  titledex check "Smart Campus Navigation" --url https://docs.google.com/...&output=csv
  titledex check "IoT Home Automation" -k 5`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), args[0])
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkFile, "file", "f", "", "CSV file with prior titles")
	checkCmd.Flags().StringVar(&checkURL, "url", "", "published CSV sheet URL")
	checkCmd.Flags().IntVarP(&checkTopK, "top-k", "k", 0, "number of matches to show (default 3)")
}

func runCheck(ctx context.Context, query string) error {
	titles, err := loadTitles(ctx, checkFile, checkURL)
	if err != nil {
		return err
	}

	reader := staticCorpus{
		corpus: domcorpus.Reconstruct("cli", titles, "", time.Now().UnixMilli()),
	}
	out, err := checkuc.New(reader).Check(ctx, "cli", query, checkTopK)
	if err != nil {
		return err
	}

	printOutcome(query, out)
	return nil
}

// loadTitles resolves the corpus source: file, URL, or the stock dataset.
func loadTitles(ctx context.Context, file, url string) ([]title.Title, error) {
	switch {
	case file != "" && url != "":
		return nil, fmt.Errorf("use either --file or --url, not both")
	case file != "":
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", file, err)
		}
		defer f.Close()
		titles, err := ingest.DecodeCSV(f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", file, err)
		}
		return titles, nil
	case url != "":
		titles, err := ingest.NewFetcher(zap.NewNop()).FetchCSV(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("fetch sheet: %w", err)
		}
		return titles, nil
	default:
		return ingest.DefaultTitles(), nil
	}
}

// staticCorpus serves one in-memory corpus; no store involved.
type staticCorpus struct {
	corpus domcorpus.Corpus
}

func (s staticCorpus) Get(_ context.Context, _ string) (domcorpus.Corpus, error) {
	return s.corpus, nil
}

func printOutcome(query string, out checkuc.Outcome) {
	fmt.Printf("Query: %s\n", query)
	fmt.Printf("Corpus size: %d\n\n", out.CorpusSize)

	best, ok := out.Report.BestScore()
	if !ok {
		fmt.Println("Corpus is empty: nothing to compare against.")
		return
	}

	fmt.Printf("Best score: %.4f\n", best)
	fmt.Printf("Risk tier:  %s\n\n", tierColor(out.Tier).Sprint(tierLabel(out.Tier)))

	fmt.Println("Top matches:")
	for i, m := range out.Report.Matches() {
		fmt.Printf("  %d. [%.4f] %s\n", i+1, m.Score(), m.Title())
		if sv := m.Metadata()["supervisor"]; sv != "" {
			fmt.Printf("     supervisor: %s\n", sv)
		}
	}
}

func tierColor(t risk.Tier) *color.Color {
	switch t {
	case risk.High:
		return color.New(color.FgRed, color.Bold)
	case risk.Medium:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func tierLabel(t risk.Tier) string {
	switch t {
	case risk.High:
		return "HIGH: heavy overlap with an existing title"
	case risk.Medium:
		return "MEDIUM: partial topic overlap"
	default:
		return "LOW: little overlap"
	}
}
