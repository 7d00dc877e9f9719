package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartfit/pkg/integrations"
	"github.com/matzehuels/chartfit/pkg/integrations/analytics"
)

// newChartsCmd creates the charts command for browsing saved charts.
func newChartsCmd() *cobra.Command {
	var refresh, pick bool

	cmd := &cobra.Command{
		Use:   "charts",
		Short: "List saved charts from the analytics service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharts(cmd.Context(), refresh, pick)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")
	cmd.Flags().BoolVar(&pick, "pick", false, "select a chart interactively")

	return cmd
}

func analyticsClient(cfg Config) (*analytics.Client, error) {
	if cfg.AnalyticsURL == "" {
		return nil, fmt.Errorf("no analytics service configured: set analytics_url in the config file")
	}
	httpCache, err := integrations.NewCache(cfg.CacheTTL())
	if err != nil {
		return nil, err
	}
	return analytics.NewClient(cfg.AnalyticsURL, cfg.AnalyticsToken, httpCache), nil
}

func runCharts(ctx context.Context, refresh, pick bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	client, err := analyticsClient(cfg)
	if err != nil {
		return err
	}

	charts, err := client.ListCharts(ctx, refresh)
	if err != nil {
		return err
	}
	if len(charts) == 0 {
		printInfo("No saved charts")
		return nil
	}

	if pick {
		chart, err := pickChart(charts)
		if err != nil {
			return err
		}
		if chart == nil {
			return nil
		}
		printSuccess("Selected %s", chart.Name)
		printDetail("Render it: chartfit render --chart %s", chart.ID)
		return nil
	}

	for _, c := range charts {
		fmt.Println(StyleValue.Render(c.Name))
		printDetail("id: %s  updated: %s", c.ID, c.UpdatedAt.Format("2006-01-02"))
	}
	return nil
}
