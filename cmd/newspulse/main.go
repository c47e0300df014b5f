package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"newspulse/internal/app"
	"newspulse/internal/config"
	"newspulse/internal/domain"
	"newspulse/internal/logging"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "newspulse",
		Short:         "Fetch, score, and aggregate company news sentiment",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newHarvestCmd())
	root.AddCommand(newHistoryCmd())
	return root
}

func newHarvestCmd() *cobra.Command {
	var (
		company      string
		count        int
		fromStr      string
		toStr        string
		exportFormat string
	)

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest recent news articles for a company and analyze sentiment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			req := domain.HarvestRequest{Company: company, Count: count}
			var err error
			if req.From, err = parseDate(fromStr); err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			if req.To, err = parseDate(toStr); err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			result, err := application.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			if len(result.Articles) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No articles found for %q.\n", company)
				return nil
			}

			printResult(cmd, application, result)

			if exportFormat != "" {
				path, err := application.Export(exportFormat, result)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "\nReport written to %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&company, "company", "c", "", "company name to search for (required)")
	cmd.Flags().IntVarP(&count, "count", "n", 5, fmt.Sprintf("number of articles to return (1-%d)", domain.MaxHarvestCount))
	cmd.Flags().StringVar(&fromStr, "from", "", "inclusive start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "inclusive end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "export report format: pdf, excel, or csv")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		company string
		limit   uint64
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored harvest IDs for a company (requires a database DSN)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			logger := logging.New(cfg.Logging.Level)

			application, err := app.New(cfg, logger)
			if err != nil {
				return err
			}

			ids, err := application.RecentHarvests(cmd.Context(), company, limit)
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No stored harvests for %q.\n", company)
				return nil
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&company, "company", "c", "", "company name (required)")
	cmd.Flags().Uint64Var(&limit, "limit", 10, "maximum harvests to list")
	_ = cmd.MarkFlagRequired("company")

	return cmd
}

func printResult(cmd *cobra.Command, application *app.Application, result app.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Showing %d article(s):\n\n", len(result.Articles))
	for i, article := range result.Articles {
		fmt.Fprintf(out, "%d. %s (%s)\n", i+1, article.Title, article.Source)
		fmt.Fprintf(out, "   Sentiment:   %s\n", article.Sentiment)
		fmt.Fprintf(out, "   Credibility: %.2f\n", application.Credibility(article.URL))
		if !article.PublishedAt.IsZero() {
			fmt.Fprintf(out, "   Published:   %s\n", article.PublishedAt.Format("2006-01-02"))
		}
		if len(article.Topics) > 0 {
			fmt.Fprintf(out, "   Topics:      %s\n", strings.Join(article.Topics, ", "))
		}
		fmt.Fprintf(out, "   %s\n", article.Summary)
		fmt.Fprintf(out, "   %s\n\n", article.URL)
	}

	fmt.Fprintln(out, "Comparative analysis:")
	for _, label := range domain.SentimentPriority {
		fmt.Fprintf(out, "   %-9s %d\n", label, result.Stats.SentimentDistribution[label])
	}
	fmt.Fprintf(out, "   Dominant sentiment: %s\n", result.Stats.DominantSentiment)
	if len(result.Stats.TopTopics) > 0 {
		fmt.Fprintf(out, "   Top topics: %s\n", strings.Join(result.Stats.TopTopics, ", "))
	}
	for source, n := range result.Stats.SourceDistribution {
		fmt.Fprintf(out, "   Source %s: %d\n", source, n)
	}
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", value)
}
