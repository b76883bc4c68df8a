package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/hidrica/drought-cost-engine/pkg/alerts"
	"github.com/hidrica/drought-cost-engine/pkg/api"
	"github.com/hidrica/drought-cost-engine/pkg/brief"
	"github.com/hidrica/drought-cost-engine/pkg/config"
	"github.com/hidrica/drought-cost-engine/pkg/datasource"
	"github.com/hidrica/drought-cost-engine/pkg/metrics"
	"github.com/hidrica/drought-cost-engine/pkg/models"
	"github.com/hidrica/drought-cost-engine/pkg/output"
	"github.com/hidrica/drought-cost-engine/pkg/pricing"
	"github.com/hidrica/drought-cost-engine/pkg/reporter"
	"github.com/hidrica/drought-cost-engine/pkg/service"
	"github.com/hidrica/drought-cost-engine/pkg/storage"
)

var (
	// Simulate flags
	zoneID         string
	projectionDays int
	plantIDs       []string
	actionIDs      []string
	profile        string
	noDefault      bool
	includeBrief   bool
	outputFormat   string
	generateReport bool
	reportFormat   string
	reportOutput   string
	verbose        bool

	// History/audit flags
	historyLimit int

	// Global config
	cfg   *config.Config
	store storage.Store
)

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf("[DEBUG] "+format+"\n", args...)
	}
}

func main() {
	cfg = config.NewConfig()

	var rootCmd = &cobra.Command{
		Use:   "drought-sim",
		Short: "Drought risk and economic impact simulator",
		Long:  `Assess hydrological drought risk per zone and project the cost of acting versus not acting on dependent power plants.`,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run an economic simulation for a zone",
		Run:   runSimulate,
	}
	simulateCmd.Flags().StringVarP(&zoneID, "zone", "z", "", "Zone to simulate")
	simulateCmd.Flags().IntVarP(&projectionDays, "days", "d", 90, "Projection horizon in days (1-365)")
	simulateCmd.Flags().StringSliceVar(&plantIDs, "plants", nil, "Restrict to these plant ids")
	simulateCmd.Flags().StringSliceVar(&actionIDs, "actions", nil, "Explicit catalog action ids (skips heuristics)")
	simulateCmd.Flags().StringVar(&profile, "profile", "", "Audience profile: government, industry")
	simulateCmd.Flags().BoolVar(&noDefault, "no-default-assumption", false, "Disable the what-if improvement assumption")
	simulateCmd.Flags().BoolVar(&includeBrief, "brief", false, "Attach a narrative brief")
	simulateCmd.Flags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json")
	simulateCmd.Flags().BoolVar(&generateReport, "generate-report", false, "Write a full report file")
	simulateCmd.Flags().StringVar(&reportFormat, "report-format", "markdown", "Report format: text, csv, markdown")
	simulateCmd.Flags().StringVar(&reportOutput, "report-output", "drought-report.md", "Output file for the report")

	riskCmd := &cobra.Command{
		Use:   "risk <zone-id>",
		Short: "Show the current risk snapshot for a zone",
		Args:  cobra.ExactArgs(1),
		Run:   runRisk,
	}

	actionsCmd := &cobra.Command{
		Use:   "actions <zone-id>",
		Short: "Show recommended mitigation actions for a zone",
		Args:  cobra.ExactArgs(1),
		Run:   runActions,
	}
	actionsCmd.Flags().StringVar(&profile, "profile", "", "Audience profile: government, industry")

	pricesCmd := &cobra.Command{
		Use:   "prices <region>",
		Short: "Resolve energy and fuel prices for a region",
		Run:   runPrices,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Run the default simulation across every active zone",
		Run:   runSweep,
	}
	sweepCmd.Flags().IntVarP(&projectionDays, "days", "d", 90, "Projection horizon in days (1-365)")

	historyCmd := &cobra.Command{
		Use:   "history <zone-id>",
		Short: "View past simulation runs",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of runs to show")

	auditCmd := &cobra.Command{
		Use:   "audit <run-id>",
		Short: "View the audit log for a simulation run",
		Args:  cobra.ExactArgs(1),
		Run:   runAudit,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Run:   runServe,
	}

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(actionsCmd)
	rootCmd.AddCommand(pricesCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initStorage() error {
	if !cfg.StorageEnabled {
		return nil
	}
	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

func initStorageForced() error {
	var err error
	store, err = storage.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return nil
}

// buildService assembles the engine with the configured collaborators.
// The observation source and alert publisher are optional; everything
// else degrades per its own contract.
func buildService(m *metrics.Metrics) *service.Service {
	cfg.Verbose = cfg.Verbose || verbose

	var source datasource.ObservationSource
	if cfg.ObservationsURL != "" {
		src, err := datasource.NewPrometheusSource(cfg.ObservationsURL)
		if err != nil {
			fmt.Printf("[WARN] Observation source unavailable: %v\n", err)
		} else {
			source = src
			logVerbose("Using observations at %s", cfg.ObservationsURL)
		}
	}

	var enricher *brief.Enricher
	if cfg.BriefProviderURL != "" {
		enricher = brief.NewEnricher(brief.NewHTTPProvider(cfg.BriefProviderURL, cfg.BriefTimeout), cfg.Verbose)
	}

	var publisher service.AlertPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher = alerts.New(cfg.KafkaBrokers, cfg.KafkaAlertTopic, nil)
	}

	return service.New(service.Deps{
		Store:    store,
		Source:   source,
		Resolver: pricing.NewResolver(cfg.PriceFeedURL, cfg.PriceFeedTimeout, cfg.PriceCacheTTL),
		Enricher: enricher,
		Alerts:   publisher,
		Metrics:  m,
		Config:   cfg,
	})
}

func runSimulate(cmd *cobra.Command, args []string) {
	if zoneID == "" {
		fmt.Fprintln(os.Stderr, "Error: --zone must be specified")
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	format := outputFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	handler, err := output.New(format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc := buildService(nil)
	ctx := context.Background()

	if handler.Format() == "text" {
		fmt.Printf("[INFO] Simulating zone %s over %d day(s)\n", zoneID, projectionDays)
	}

	result, err := svc.RunSimulation(ctx, models.SimulationRequest{
		ZoneID:                   zoneID,
		PowerPlantIDs:            plantIDs,
		ActionInstanceIDs:        actionIDs,
		ProjectionDays:           projectionDays,
		Profile:                  models.Profile(profile),
		DisableDefaultAssumption: noDefault,
		IncludeBrief:             includeBrief,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := handler.DisplayResult(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if generateReport {
		if err := writeReport(ctx, svc, result); err != nil {
			fmt.Fprintf(os.Stderr, "[ERROR] Failed to generate report: %v\n", err)
		}
	}
}

func writeReport(ctx context.Context, svc *service.Service, result *models.SimulationResult) error {
	snap, err := svc.GetZoneRisk(ctx, result.ZoneID)
	if err != nil {
		snap = nil
	}

	rep := reporter.New(reporter.Format(reportFormat))
	report, err := rep.Generate(result, snap, result.ZoneID)
	if err != nil {
		return err
	}
	if plants, err := svc.ListPlants(ctx, result.ZoneID); err == nil {
		report.AddCoolingStats(plants)
	}

	f, err := os.Create(reportOutput)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := rep.Render(report, f); err != nil {
		return err
	}
	fmt.Printf("[INFO] Report written to %s\n", reportOutput)
	return nil
}

func runRisk(cmd *cobra.Command, args []string) {
	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := buildService(nil)
	snap, err := svc.GetZoneRisk(context.Background(), args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Zone %s risk snapshot (%s)\n", snap.ZoneID, snap.CalculatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  SPI (6m):         %.2f\n", snap.SPI6M)
	fmt.Printf("  Risk level:       %s\n", snap.RiskLevel)
	fmt.Printf("  Trend:            %s\n", snap.Trend)
	fmt.Printf("  Days to critical: %d\n", snap.DaysToCritical)
}

func runActions(cmd *cobra.Command, args []string) {
	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := buildService(nil)
	plan, err := svc.GetRecommendedActions(context.Background(), args[0], models.Profile(profile))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Zone %s: %s risk, SPI %.2f\n", plan.Risk.ZoneID, plan.Risk.RiskLevel, plan.Risk.SPI6M)
	if len(plan.Fired) == 0 {
		fmt.Println("No heuristics fired; no actions recommended.")
		return
	}

	fmt.Printf("Fired heuristics (escalated: %v):\n", plan.Escalated)
	for _, trig := range plan.Fired {
		fmt.Printf("  %s: %.1f%% reduction, +%.1f day(s) - %s\n",
			trig.ID, trig.PercentageEffect, trig.DayExtension, trig.Justification)
	}

	fmt.Printf("\nRecommended actions (%.1f effect day(s) total):\n", plan.TotalEffectDays)
	for i, action := range plan.Actions {
		fmt.Printf("%d. [%s] %s\n", i+1, action.Code, action.Name)
		fmt.Printf("   Reduction: %.1f%%, Duration: %d day(s), Priority: %d\n",
			action.ReductionPercentage, action.DurationDays, action.PriorityLevel)
		fmt.Printf("   %s\n", action.Justification)
	}
}

func runPrices(cmd *cobra.Command, args []string) {
	region := ""
	if len(args) > 0 {
		region = args[0]
	}

	svc := buildService(nil)
	quote := svc.GetPrices(context.Background(), region)

	fmt.Printf("Prices for region %q:\n", strings.ToUpper(region))
	fmt.Printf("  Electricity: %.2f USD/MWh\n", quote.MarginalPriceUSDMWh)
	fmt.Printf("  Fuel:        %.2f USD/MMBtu\n", quote.FuelPriceUSDMMBtu)
	fmt.Printf("  Source:      %s\n", quote.Source)
}

func runSweep(cmd *cobra.Command, args []string) {
	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := buildService(nil)
	summary, err := svc.SweepZones(context.Background(), projectionDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	for _, outcome := range summary.Outcomes {
		if outcome.Error != "" {
			fmt.Printf("  %s (%s): FAILED - %s\n", outcome.ZoneName, outcome.ZoneID, outcome.Error)
			continue
		}
		fmt.Printf("  %s (%s): %s risk, $%.2f potential savings\n",
			outcome.ZoneName, outcome.ZoneID, outcome.RiskLevel, outcome.SavingsUSD)
	}
	if len(summary.CriticalZones) > 0 {
		fmt.Printf("[WARN] Critical zones: %s\n", strings.Join(summary.CriticalZones, ", "))
	}

	handler, _ := output.New("text", os.Stdout)
	handler.DisplaySummary(summary.TotalSavingsUSD, summary.ZonesProcessed)
}

func runHistory(cmd *cobra.Command, args []string) {
	zone := args[0]

	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := buildService(nil)
	ctx := context.Background()

	records, err := svc.ListSimulations(ctx, zone, historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		fmt.Printf("No simulation runs found for zone: %s\n", zone)
		return
	}

	fmt.Printf("Recent runs for zone '%s':\n\n", zone)
	for i, rec := range records {
		fmt.Printf("%d. %s (ID: %s)\n", i+1, rec.CreatedAt.Format("2006-01-02 15:04:05"), rec.ID)
		fmt.Printf("   Horizon: %d day(s), %d plant(s)\n", rec.ProjectionDays, rec.PlantsAnalyzed)
		fmt.Printf("   Savings: $%.2f (%.1f%%)\n", rec.SavingsUSD, rec.SavingsPct)
		fmt.Printf("   Selection: %s, prices: %s\n", rec.SelectionMode, rec.PriceSource)
		fmt.Println()
	}

	if stats, err := svc.GetZoneStats(ctx, zone, 30); err == nil && stats.Runs > 0 {
		fmt.Printf("Last 30 days: %d run(s), $%.2f total savings, %d on fallback pricing\n",
			stats.Runs, stats.TotalSavingsUSD, stats.FallbackRuns)
	}
}

func runAudit(cmd *cobra.Command, args []string) {
	runID := args[0]

	if err := initStorageForced(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	svc := buildService(nil)
	ctx := context.Background()

	rec, err := svc.GetSimulation(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Run %s (zone %s, %s)\n", rec.ID, rec.ZoneID, rec.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Printf("  No action:   $%.2f\n", rec.NoActionCostUSD)
	fmt.Printf("  With action: $%.2f\n", rec.WithActionCostUSD)
	fmt.Printf("  Savings:     $%.2f (%.1f%%)\n\n", rec.SavingsUSD, rec.SavingsPct)

	entries, err := svc.GetAuditLog(ctx, runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(entries) == 0 {
		fmt.Println("No audit entries recorded.")
		return
	}
	for _, entry := range entries {
		fmt.Printf("  %s  %-22s %s\n", entry.CreatedAt.Format("15:04:05"), entry.Event, entry.Detail)
	}
}

func runServe(cmd *cobra.Command, args []string) {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := initStorage(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if store != nil {
		defer store.Close()
	}

	m := metrics.NewMetrics()
	svc := buildService(m)
	router := api.NewRouter(svc, m.Handler())

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logged := handlers.LoggingHandler(os.Stdout, router)
	fmt.Printf("[INFO] Drought cost engine listening on %s\n", addr)
	if err := http.ListenAndServe(addr, logged); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
