package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/thesisdesk/titledex/internal/config"
	domcorpus "github.com/thesisdesk/titledex/internal/domain/corpus"
	"github.com/thesisdesk/titledex/internal/domain/title"
	"github.com/thesisdesk/titledex/internal/ingest"
	logpkg "github.com/thesisdesk/titledex/internal/logger"
	corpusrepo "github.com/thesisdesk/titledex/internal/repository/corpus"
	corpusuc "github.com/thesisdesk/titledex/internal/usecase/corpus"
)

var (
	loadFile   string
	loadURL    string
	loadCorpus string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load a CSV table into the stored corpus",
	Long: `Replace a stored corpus with rows from a local CSV file or a published
sheet URL, using the database from the active config environment.

Examples:
  titledex load -f titles.csv
  titledex load --url https://docs.google.com/...&output=csv --corpus theses`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLoad(cmd.Context())
	},
}

func init() {
	loadCmd.Flags().StringVarP(&loadFile, "file", "f", "", "CSV file with prior titles")
	loadCmd.Flags().StringVar(&loadURL, "url", "", "published CSV sheet URL")
	loadCmd.Flags().StringVar(&loadCorpus, "corpus", "", "corpus name (default: the configured seed corpus)")
}

func runLoad(ctx context.Context) error {
	if loadFile == "" && loadURL == "" {
		return fmt.Errorf("either --file or --url is required")
	}

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := openStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	name := loadCorpus
	if name == "" {
		name = cfg.Corpus.SeedName
	}

	svc := corpusuc.New(corpusrepo.New(store), ingest.NewFetcher(logger), logger)

	var stored domcorpus.Corpus
	if loadFile != "" {
		titles, err := loadTitlesFromFile(loadFile)
		if err != nil {
			return err
		}
		stored, err = svc.Replace(ctx, name, titles)
		if err != nil {
			return fmt.Errorf("replace corpus: %w", err)
		}
	} else {
		stored, err = svc.LoadFromURL(ctx, name, loadURL)
		if err != nil {
			return fmt.Errorf("load corpus: %w", err)
		}
	}

	fmt.Printf("Loaded %d titles into corpus %q (revision %s)\n", stored.Size(), name, stored.Revision())
	return nil
}

func loadTitlesFromFile(path string) ([]title.Title, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	titles, err := ingest.DecodeCSV(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return titles, nil
}
