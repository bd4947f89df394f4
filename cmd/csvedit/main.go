package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"folio/internal/config"
	"folio/internal/csvtable"
	"folio/internal/logging"
	"folio/internal/store"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	selectFlag string
	modeFlag   string
	outDir     string
	logger     zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csvedit",
	Short: "Parse, filter and export csv files",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(os.Getenv("LOG_LEVEL"), "")
	},
	SilenceUsage: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Print the parsed table, one numbered row per line",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all, selected or deselected rows as quoted csv",
	Long: `Export rows of a csv file.

Rows are picked by their zero based index with --select, then
--mode decides which side of the selection is written:
  all        - every row
  selected   - only the selected rows
  deselected - every row that was not selected`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change the editor preferences",
}

var prefsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the current preferences",
	Args:  cobra.NoArgs,
	RunE:  runPrefsGet,
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <density|theme|full-width> <value>",
	Short: "Change one preference",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrefsSet,
}

func init() {
	exportCmd.Flags().StringVar(&selectFlag, "select", "", "comma separated row indices, e.g. 0,2")
	exportCmd.Flags().StringVar(&modeFlag, "mode", "all", "all, selected or deselected")
	exportCmd.Flags().StringVarP(&outDir, "out", "o", "", "write the export into this directory instead of stdout")

	prefsCmd.AddCommand(prefsGetCmd, prefsSetCmd)
	rootCmd.AddCommand(parseCmd, exportCmd, prefsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readInput(cmd *cobra.Command, args []string) (*csvtable.Table, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return csvtable.Load(string(b))
}

func runParse(cmd *cobra.Command, args []string) error {
	table, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "    %s\n", strings.Join(table.Headers, " | "))
	for i, row := range table.Rows {
		fmt.Fprintf(out, "%3d %s\n", i, strings.Join(row, " | "))
	}
	logger.Debug().Int("rows", len(table.Rows)).Int("columns", len(table.Headers)).Msg("parsed csv")
	return nil
}

func parseSelection(s string) ([]int, error) {
	out := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		i, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid row index %q", part)
		}
		out = append(out, i)
	}
	return out, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	table, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	selection, err := parseSelection(selectFlag)
	if err != nil {
		return err
	}
	if err := table.Select(selection...); err != nil {
		return err
	}
	logger.Debug().Int("selected", table.SelectedCount()).Str("mode", modeFlag).Msg("exporting csv")

	var filename, content string
	switch modeFlag {
	case "all":
		filename, content = table.ExportAll()
	case "selected":
		filename, content = table.ExportSelected()
	case "deselected":
		filename, content = table.ExportDeselected()
	default:
		return fmt.Errorf("unknown mode %q", modeFlag)
	}

	if outDir == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), content)
		return err
	}
	path := filepath.Join(outDir, filename)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info().Str("file", path).Msg("exported csv")
	return nil
}

func openStore() (*store.SqliteStore, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.StorePath(), logger)
}

func printPreferences(cmd *cobra.Command, p csvtable.Preferences) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "density:    %s\n", p.Density)
	fmt.Fprintf(out, "theme:      %s\n", p.Theme)
	fmt.Fprintf(out, "full-width: %t\n", p.FullWidth)
}

func runPrefsGet(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	p, err := csvtable.LoadPreferences(kv)
	if err != nil {
		return err
	}
	printPreferences(cmd, p)
	return nil
}

func runPrefsSet(cmd *cobra.Command, args []string) error {
	kv, err := openStore()
	if err != nil {
		return err
	}
	defer kv.Close()

	p, err := csvtable.SetPreference(kv, args[0], args[1])
	if err != nil {
		return err
	}
	printPreferences(cmd, p)
	return nil
}
