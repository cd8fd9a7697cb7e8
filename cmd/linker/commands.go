package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/eviction-cares/internal/audit"
	"github.com/eviction-cares/internal/db"
	"github.com/eviction-cares/internal/engine"
	"github.com/eviction-cares/internal/ingest"
	"github.com/eviction-cares/internal/models"
	"github.com/eviction-cares/internal/web"
)

// createServeCmd starts the HTTP API
func createServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			server := web.NewServer(a.cfg.Server, web.Services{
				DB:          a.conn.DB,
				Suggestions: a.suggestions,
				Pipeline:    a.pipeline,
				Runs:        a.runs,
				Audit:       a.tracker,
			}, a.logger)
			return server.Start(ctx)
		}),
	}
}

// createMigrateCmd applies the schema
func createMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			if err := db.Migrate(ctx, a.conn.DB); err != nil {
				return err
			}
			fmt.Println("Schema is up to date")
			return nil
		}),
	}
}

// createIngestCmd runs an eviction file through the pipeline
func createIngestCmd() *cobra.Command {
	var pairs []string
	var mappingFile string

	cmd := &cobra.Command{
		Use:   "ingest [filename]",
		Short: "Ingest an eviction CSV or XLSX file",
		Long: `Stages, links, geocodes and promotes an eviction file in one run.
Columns are renamed with --map target=source pairs and/or a YAML --mapping-file;
pairs given on the command line override the file.`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			mapping := ingest.ColumnMapping{}
			if mappingFile != "" {
				fromFile, err := ingest.LoadMappingFile(mappingFile)
				if err != nil {
					return err
				}
				mapping = mapping.Merge(fromFile)
			}
			fromFlags, err := ingest.ParseMappingPairs(pairs)
			if err != nil {
				return err
			}
			mapping = mapping.Merge(fromFlags)

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			name := filepath.Base(args[0])
			table, err := ingest.ReadTable(name, f)
			if err != nil {
				return err
			}

			report, err := a.pipeline.Run(ctx, engine.Upload{Name: name, Table: table, Mapping: mapping})
			if err != nil {
				return err
			}
			printReport(report)
			return nil
		}),
	}

	cmd.Flags().StringArrayVar(&pairs, "map", nil, "column mapping as target=source (repeatable)")
	cmd.Flags().StringVar(&mappingFile, "mapping-file", "", "YAML file with a columns: source -> target mapping")
	return cmd
}

func printReport(r *engine.RunReport) {
	fmt.Printf("Run %s\n", r.RunID)
	fmt.Printf("  Received:            %d\n", r.Received)
	fmt.Printf("  Dropped:             %d\n", r.Dropped)
	fmt.Printf("  Duplicates:          %d\n", r.Duplicates)
	fmt.Printf("  Staged:              %d\n", r.Staged)
	fmt.Printf("  Unparseable dates:   %d\n", r.BadDates)
	fmt.Printf("  Exact matches:       %d (%d relationships)\n", r.ExactMatched, r.ExactRelationships)
	fmt.Printf("  Sent to geocoder:    %d\n", r.Unresolved)
	fmt.Printf("  Geocoded:            %d\n", r.Geocoded)
	fmt.Printf("  Geocode failures:    %d\n", r.GeocodeFailed)
	fmt.Printf("  Near a property:     %d\n", r.NearProperty)
	fmt.Printf("  Promoted:            %d\n", r.Promoted)
	fmt.Printf("  Already present:     %d\n", r.SkippedExisting)
}

// createRunCmd shows a past ingestion run
func createRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [run-id]",
		Short: "Show an ingestion run",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			runID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			run, err := a.runs.Get(ctx, runID)
			if err != nil {
				return err
			}
			return printJSON(run)
		}),
	}
}

// createStandardizeCmd prints the standardized form of an address
func createStandardizeCmd() *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "standardize [address]",
		Short: "Print the standardized form of an address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadBase()
			if err != nil {
				return err
			}
			standardizer, err := newStandardizer(cfg)
			if err != nil {
				return err
			}
			fmt.Println(standardizer.StandardizeAddressCity(args[0], city))
			return nil
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "city, state and zip text")
	return cmd
}

// createStandardizePropertiesCmd fills missing registry keys
func createStandardizePropertiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standardize-properties",
		Short: "Compute standardized addresses for registry properties that lack one",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			n, err := a.properties.StandardizeMissing(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Standardized %d properties\n", n)
			return nil
		}),
	}
}

// createSuggestionsCmd groups the suggestion queue commands
func createSuggestionsCmd() *cobra.Command {
	suggestionsCmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Inspect the proximity suggestion queue",
	}

	suggestionsCmd.AddCommand(&cobra.Command{
		Use:   "count",
		Short: "Count open suggestions",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			n, err := a.suggestions.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		}),
	})

	suggestionsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List open suggestions by property",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			groups, err := a.suggestions.List(ctx)
			if err != nil {
				return err
			}
			printGroups(groups)
			return nil
		}),
	})

	suggestionsCmd.AddCommand(&cobra.Command{
		Use:   "archived",
		Short: "List manual decisions by property",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			groups, err := a.suggestions.ListArchived(ctx)
			if err != nil {
				return err
			}
			printGroups(groups)
			return nil
		}),
	})

	return suggestionsCmd
}

var verificationLabels = map[int]string{
	models.VerificationConfirmed:  "confirmed",
	models.VerificationRejected:   "rejected",
	models.VerificationUnverified: "unverified",
}

func printGroups(groups []engine.SuggestionGroup) {
	for _, g := range groups {
		fmt.Printf("%d %s\n", g.PropertyID, g.PropertyName)
		for _, s := range g.Suggestions {
			line := fmt.Sprintf("  %-16s %-40s %s", s.CaseID, s.Address, verificationLabels[s.Verification])
			if s.Distance != nil {
				line += fmt.Sprintf(" %.1fm", *s.Distance)
			}
			fmt.Println(line)
		}
	}
}

type decision func(ctx context.Context, propertyID int64, caseID string) error

// createDecisionCmd builds confirm, reject and undo
func createDecisionCmd(use, short string, pick func(a *app) decision) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [property-id] [case-id]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			propertyID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid property id %q: %w", args[0], err)
			}
			if err := pick(a)(cliActor(ctx), propertyID, args[1]); err != nil {
				return err
			}
			fmt.Printf("%s: property %d, case %s\n", use, propertyID, args[1])
			return nil
		}),
	}
}

// createHistoryCmd prints the decision ledger for a case
func createHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history [case-id]",
		Short: "Show manual decisions recorded for a case",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			entries, err := a.tracker.History(ctx, args[0])
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Printf("%s %-8s property %d %-14s %s\n",
					e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.CaresID, e.Type, e.Actor)
			}
			return nil
		}),
	}
}

func cliActor(ctx context.Context) context.Context {
	name := os.Getenv("USER")
	if u, err := user.Current(); err == nil {
		name = u.Username
	}
	return audit.WithActor(ctx, name, "cli")
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
