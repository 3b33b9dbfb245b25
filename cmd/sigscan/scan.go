package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/sigscan/pkg/reader"
	"github.com/praetorian-inc/sigscan/pkg/search"
	"github.com/praetorian-inc/sigscan/pkg/sig"
	"github.com/praetorian-inc/sigscan/pkg/sigfile"
	"github.com/praetorian-inc/sigscan/pkg/store"
	"github.com/praetorian-inc/sigscan/pkg/target"
)

var (
	scanSig       string
	scanSigID     string
	scanCatalog   string
	scanPID       int
	scanModule    string
	scanProt      string
	scanOffset    uint64
	scanSize      uint64
	scanParallel  bool
	scanWorkers   int
	scanBlockSize uint64
	scanFormat    string
	scanOutput    string
	scanNoColor   bool
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a file or process for byte signatures",
	Long: `Scan a file, or a process selected with --pid, for byte signatures.

The signature comes from --sig (inline text), --id (a catalog entry), or,
when neither is given, every signature in the catalog is searched.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSig, "sig", "", `Inline signature text, e.g. "48 8B ?? 1A"`)
	scanCmd.Flags().StringVar(&scanSigID, "id", "", "Catalog signature id to search for")
	scanCmd.Flags().StringVar(&scanCatalog, "catalog", "", "Path to a signature catalog YAML file (default: builtin catalog)")
	scanCmd.Flags().IntVar(&scanPID, "pid", 0, "Scan the process with this pid instead of a file")
	scanCmd.Flags().StringVar(&scanModule, "module", "", "Restrict a process scan to the named module, e.g. libc.so.6")
	scanCmd.Flags().StringVar(&scanProt, "prot", "", `Restrict module regions by protection, e.g. "rx"`)
	scanCmd.Flags().Uint64Var(&scanOffset, "offset", 0, "Range start (file offset or virtual address)")
	scanCmd.Flags().Uint64Var(&scanSize, "size", 0, "Range size in bytes (file: default whole file)")
	scanCmd.Flags().BoolVar(&scanParallel, "parallel", false, "Split the range across concurrent workers")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Maximum worker count for --parallel (default: number of CPUs)")
	scanCmd.Flags().Uint64Var(&scanBlockSize, "block-size", search.DefaultBlockSize, "Bytes read from the target per block")
	scanCmd.Flags().StringVar(&scanFormat, "format", "human", "Output format: human, json")
	scanCmd.Flags().StringVar(&scanOutput, "output", "", "Record results in a SQLite database at this path")
	scanCmd.Flags().BoolVar(&scanNoColor, "no-color", false, "Disable colored output")
}

// scanOutcome pairs one signature with its search result for reporting.
type scanOutcome struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Pattern  string   `json:"pattern"`
	Matches  []uint64 `json:"matches"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runScan(cmd *cobra.Command, args []string) error {
	defs, err := selectSignatures()
	if err != nil {
		return err
	}

	ctx, src, targetName, cleanup, err := buildContext(args)
	if err != nil {
		return err
	}
	defer cleanup()

	searcher, err := buildSearcher(src)
	if err != nil {
		return err
	}

	var db store.Store
	if scanOutput != "" {
		db, err = store.New(store.Config{Path: scanOutput})
		if err != nil {
			return err
		}
		defer db.Close()
	}

	outcomes := make([]scanOutcome, 0, len(defs))
	for _, def := range defs {
		slog.Debug("scanning", "target", targetName, "sig", def.Pattern, "id", def.ID)
		res := ctx.SearchWith(searcher, def.Sig)

		if db != nil {
			if _, err := db.AddScan(targetName, def.ID, def.Pattern, res); err != nil {
				return fmt.Errorf("recording scan: %w", err)
			}
		}
		outcomes = append(outcomes, scanOutcome{
			ID:       def.ID,
			Name:     def.Name,
			Pattern:  def.Pattern,
			Matches:  res.Matches,
			Errors:   res.Errors,
			Warnings: res.Warnings,
		})
	}

	switch scanFormat {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Target  string        `json:"target"`
			Results []scanOutcome `json:"results"`
		}{Target: targetName, Results: outcomes})
	case "human":
		printHuman(cmd, targetName, outcomes)
		return nil
	default:
		return fmt.Errorf("unknown format: %s", scanFormat)
	}
}

// selectSignatures resolves the flags into the list of signatures to search
// for: an inline one, a single catalog entry, or the whole catalog.
func selectSignatures() ([]*sigfile.Definition, error) {
	if scanSig != "" && scanSigID != "" {
		return nil, fmt.Errorf("--sig and --id are mutually exclusive")
	}

	if scanSig != "" {
		def := &sigfile.Definition{Pattern: scanSig}
		var err error
		def.Sig, err = sig.Parse(scanSig)
		if err != nil {
			return nil, err
		}
		return []*sigfile.Definition{def}, nil
	}

	loader := sigfile.NewLoader()
	var (
		defs []*sigfile.Definition
		err  error
	)
	if scanCatalog != "" {
		defs, err = loader.LoadFile(scanCatalog)
	} else {
		defs, err = loader.LoadBuiltin()
	}
	if err != nil {
		return nil, err
	}

	if scanSigID != "" {
		def := sigfile.Find(defs, scanSigID)
		if def == nil {
			return nil, fmt.Errorf("signature %q not found in catalog", scanSigID)
		}
		return []*sigfile.Definition{def}, nil
	}
	return defs, nil
}

// buildContext turns the target flags into a search context plus the source
// a searcher should read from.
func buildContext(args []string) (*search.Context, reader.Source, string, func(), error) {
	noop := func() {}

	if scanPID != 0 {
		if len(args) != 0 {
			return nil, nil, "", noop, fmt.Errorf("--pid and a file target are mutually exclusive")
		}
		t := target.Process(scanPID)
		name := fmt.Sprintf("pid:%d", scanPID)
		switch {
		case scanModule != "":
			prot, err := parseProtFlag(scanProt)
			if err != nil {
				return nil, nil, "", noop, err
			}
			return t.InModuleProt(scanModule, prot), t.Source(), name, noop, nil
		case scanSize != 0:
			r := reader.Range{Start: scanOffset, Size: scanSize}
			return t.InRange(r), t.Source(), name, noop, nil
		default:
			return nil, nil, "", noop, fmt.Errorf("process scans need --module or --offset/--size")
		}
	}

	if len(args) != 1 {
		return nil, nil, "", noop, fmt.Errorf("a file target or --pid is required")
	}
	t := target.File(args[0])
	cleanup := func() { t.Close() }
	if scanSize != 0 {
		return t.InRange(scanOffset, scanSize), t.Source(), args[0], cleanup, nil
	}
	return t.InWhole(), t.Source(), args[0], cleanup, nil
}

func buildSearcher(src reader.Source) (search.Searcher, error) {
	if !scanParallel {
		return search.NewChunked(src, search.WithBlockSize(scanBlockSize)), nil
	}
	opts := []search.Option{search.WithBlockSize(scanBlockSize)}
	if scanWorkers != 0 {
		opts = append(opts, search.WithMaxWorkers(scanWorkers))
	}
	return search.NewParallel(src, opts...), nil
}

func parseProtFlag(s string) (target.Prot, error) {
	var p target.Prot
	for _, c := range s {
		switch c {
		case 'r':
			p |= target.ProtRead
		case 'w':
			p |= target.ProtWrite
		case 'x':
			p |= target.ProtExec
		default:
			return 0, fmt.Errorf("unknown protection flag %q (want r, w, x)", c)
		}
	}
	return p, nil
}

func printHuman(cmd *cobra.Command, targetName string, outcomes []scanOutcome) {
	out := cmd.OutOrStdout()

	heading := color.New(color.Bold)
	sigName := color.New(color.Bold, color.FgHiBlue)
	addr := color.New(color.FgYellow)
	warn := color.New(color.FgHiYellow)
	errc := color.New(color.FgHiRed)
	if scanNoColor {
		for _, c := range []*color.Color{heading, sigName, addr, warn, errc} {
			c.DisableColor()
		}
	}

	heading.Fprintf(out, "%s\n", targetName)
	total := 0
	for _, o := range outcomes {
		if len(o.Matches) == 0 && len(o.Errors) == 0 && len(o.Warnings) == 0 {
			continue
		}
		label := o.Pattern
		if o.ID != "" {
			label = fmt.Sprintf("%s (%s)", o.ID, o.Pattern)
		}
		sigName.Fprintf(out, "  %s\n", label)
		for _, a := range o.Matches {
			addr.Fprintf(out, "    %#x\n", a)
		}
		for _, w := range o.Warnings {
			warn.Fprintf(out, "    warning: %s\n", w)
		}
		for _, e := range o.Errors {
			errc.Fprintf(out, "    error: %s\n", e)
		}
		total += len(o.Matches)
	}
	fmt.Fprintf(out, "%d match(es)\n", total)
}
