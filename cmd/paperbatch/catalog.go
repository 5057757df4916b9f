// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zwli/paperbatch/internal/catalog"
	"github.com/zwli/paperbatch/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Query the run catalog (documents, reports)",
	Long: `Catalog queries the local SQLite database that summarize and report runs
write into. Use subcommands to list processed documents, search them, or
list generated reports.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded documents, most recent first",
	RunE:  runCatalogList,
}

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search recorded documents by path or title",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

var catalogReportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List generated reports, most recent first",
	RunE:  runCatalogReports,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Documents(cmd.Context())
	if err != nil {
		return err
	}
	return printDocuments(cmd, recs)
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Search(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printDocuments(cmd, recs)
}

func runCatalogReports(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.Reports(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}
	if len(recs) == 0 {
		fmt.Println("No reports recorded.")
		return nil
	}
	for _, rec := range recs {
		fmt.Fprintf(os.Stdout, "%s  (%d papers)  %s\n",
			rec.CreatedAt.Format("2006-01-02 15:04"), rec.PaperCount, rec.Path)
	}
	return nil
}

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	dbPath := stringSetting(cmd, "catalog-db", "catalog.db_path")
	if dbPath == "" {
		inputDir := stringSetting(cmd, "input-dir", "summarize.input_dir")
		if inputDir == "" {
			return nil, &types.ConfigError{Field: "catalog-db", Reason: "no catalog path: set --catalog-db or --input-dir"}
		}
		dbPath = catalog.DefaultPath(inputDir)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, &types.ConfigError{Field: "catalog-db", Reason: fmt.Sprintf("catalog %s does not exist (run summarize first)", dbPath)}
	}
	return catalog.Open(dbPath)
}

func printDocuments(cmd *cobra.Command, recs []types.DocumentRecord) error {
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(recs)
	}

	if len(recs) == 0 {
		fmt.Println("No documents recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-7s  %-17s  %s\n", "Outcome", "Kind", "Processed", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 70))
	for _, rec := range recs {
		fmt.Fprintf(os.Stdout, "%-10s  %-7s  %-17s  %s\n",
			rec.Outcome, rec.Kind, rec.ProcessedAt.Format("2006-01-02 15:04"), filepath.Base(rec.SourcePath))
	}
	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(recs))
	return nil
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-db", "", "catalog database path")
	catalogCmd.PersistentFlags().String("input-dir", "", "input directory whose default catalog to open")
	catalogCmd.PersistentFlags().Bool("json", false, "output as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogReportsCmd)

	rootCmd.AddCommand(catalogCmd)
}
