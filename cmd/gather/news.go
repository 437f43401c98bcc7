package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gatherctl/gather/internal/config"
	"github.com/gatherctl/gather/internal/model"
	"github.com/gatherctl/gather/internal/news"
)

// NewNewsCmd creates the news command.
func NewNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Scrape article headlines and summaries",
		Long: `Scrape configured listing pages for headlines, follow each headline
to its article, and extract a cleaned summary and preview.

Artifacts written to the output directory:
  news_articles.csv   - one row per article
  news_articles.json  - articles with collection metadata
  news_report.md      - per-category summary report`,
		Example: `  gather news
  gather news --max-categories 3 --articles-per-category 5
  gather news -o ./out --config ./custom.gather`,
		RunE: runNewsCmd,
	}

	addCollectionFlags(cmd)
	cmd.Flags().Int("max-categories", config.DefaultMaxCategories, "Maximum listing pages to visit")
	cmd.Flags().Int("articles-per-category", config.DefaultArticlesPerCategory, "Maximum articles per listing page")
	cmd.Flags().Duration("article-delay", config.DefaultArticleDelay, "Pause between article fetches")
	cmd.Flags().Duration("category-delay", config.DefaultCategoryDelay, "Pause between listing pages")

	return cmd
}

// runNewsCmd executes the news collection pipeline.
func runNewsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.MaxCategories, err = cmd.Flags().GetInt("max-categories"); err != nil {
		return fmt.Errorf("failed to get max-categories flag: %w", err)
	}
	if cfg.ArticlesPerCategory, err = cmd.Flags().GetInt("articles-per-category"); err != nil {
		return fmt.Errorf("failed to get articles-per-category flag: %w", err)
	}
	if cfg.ArticleDelay, err = cmd.Flags().GetDuration("article-delay"); err != nil {
		return fmt.Errorf("failed to get article-delay flag: %w", err)
	}
	if cfg.CategoryDelay, err = cmd.Flags().GetDuration("category-delay"); err != nil {
		return fmt.Errorf("failed to get category-delay flag: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	ctx, cancel := signalContext(cmd.Context(), logger)
	defer cancel()

	scraper := news.NewScraper(newFetcher(cfg), cfg, logger)
	return runCollection(ctx, cmd.OutOrStdout(), cfg, logger, model.RunNews, scraper)
}
