package main

import (
	"bufio"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-skillcheck/internal/orchestrators/transfer"
	"github.com/KirkDiggler/rpg-skillcheck/internal/repositories/dataset"
)

var (
	exportDir   string
	importScope string
	importYes   bool
	checkFix    bool
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Export and import the tracker's data as JSON",
}

var exportCmd = &cobra.Command{
	Use:   "export [players|events|sessions|all]",
	Short: "Write an export file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := transfer.ScopeAll
		if len(args) == 1 {
			parsed, err := transfer.ParseScope(args[0])
			if err != nil {
				return err
			}
			scope = parsed
		}

		out, err := current.transfer.Export(cmd.Context(), &transfer.ExportInput{Scope: scope})
		if err != nil {
			return err
		}

		path := filepath.Join(exportDir, out.Filename)
		if err := os.WriteFile(path, out.Data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Exported %s\n", path)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace data from an export file",
	Long: `Import replaces the selected collections wholesale; it does not merge.
Records that fail validation are skipped. You are asked to confirm unless
--yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		path := args[0]

		scope, err := transfer.ParseScope(importScope)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the user
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		preview, err := current.transfer.PreviewImport(ctx, &transfer.PreviewImportInput{
			Scope:       scope,
			ContentType: mime.TypeByExtension(filepath.Ext(path)),
			Data:        data,
		})
		if err != nil {
			return err
		}
		plan := preview.Plan

		fmt.Printf("This replaces the current data with %s", plan.Summary())
		if plan.Skipped > 0 {
			fmt.Printf(" (%d invalid records skipped)", plan.Skipped)
		}
		fmt.Println(".")
		if !importYes && !confirm("Continue?") {
			fmt.Println("Import cancelled.")
			return nil
		}

		out, err := current.transfer.CommitImport(ctx, &transfer.CommitImportInput{Plan: plan})
		if err != nil {
			return err
		}
		fmt.Println(out.Message)
		return nil
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan stored records for data that would load as empty",
	Long: `Check reads the players, events and session history records directly from
the store. A corrupt record is silently loaded as an empty collection; --fix
deletes corrupt records after confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		reports := dataset.Inspect(ctx, current.store)
		corrupt := 0
		for _, r := range reports {
			switch r.State {
			case dataset.RecordOK:
				fmt.Printf("ok       %s: %d entries", r.Key, r.Entries)
				if r.NullEntries > 0 {
					fmt.Printf(", %d null", r.NullEntries)
				}
				fmt.Println()
			case dataset.RecordMissing:
				fmt.Printf("missing  %s\n", r.Key)
			default:
				if r.State == dataset.RecordCorrupt {
					corrupt++
				}
				fmt.Printf("%-8s %s: %v\n", r.State, r.Key, r.Err)
			}
		}

		if corrupt == 0 {
			fmt.Println("No corrupt records found.")
			return nil
		}
		if !checkFix {
			fmt.Printf("%d corrupt records; run with --fix to delete them.\n", corrupt)
			return nil
		}
		if !importYes && !confirm("Delete the corrupt records?") {
			fmt.Println("Aborted, no changes made.")
			return nil
		}

		deleted, err := dataset.Repair(ctx, current.store, reports)
		for _, key := range deleted {
			fmt.Printf("Deleted %s\n", key)
		}
		return err
	},
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "dir", ".", "directory to write the export file to")
	importCmd.Flags().StringVar(&importScope, "scope", string(transfer.ScopeAll), "players, events, sessions or all")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")

	dataCmd.AddCommand(exportCmd)
	dataCmd.AddCommand(importCmd)

	checkCmd.Flags().BoolVar(&checkFix, "fix", false, "delete corrupt records")
	checkCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
	dataCmd.AddCommand(checkCmd)
}
