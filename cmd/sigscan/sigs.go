package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/praetorian-inc/sigscan/pkg/sigfile"
)

var sigsCatalog string

var sigsCmd = &cobra.Command{
	Use:   "sigs",
	Short: "Manage signature catalogs",
}

var sigsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List catalog signatures",
	RunE:  runSigsList,
}

var sigsCheckCmd = &cobra.Command{
	Use:   "check <catalog.yaml>",
	Short: "Validate a signature catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSigsCheck,
}

func init() {
	sigsListCmd.Flags().StringVar(&sigsCatalog, "catalog", "", "Path to a catalog YAML file (default: builtin catalog)")
	sigsCmd.AddCommand(sigsListCmd)
	sigsCmd.AddCommand(sigsCheckCmd)
}

func runSigsList(cmd *cobra.Command, args []string) error {
	loader := sigfile.NewLoader()
	var (
		defs []*sigfile.Definition
		err  error
	)
	if sigsCatalog != "" {
		defs, err = loader.LoadFile(sigsCatalog)
	} else {
		defs, err = loader.LoadBuiltin()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	id := color.New(color.FgHiGreen)
	for _, d := range defs {
		id.Fprintf(out, "%-24s", d.ID)
		fmt.Fprintf(out, " %-32s %s\n", d.Name, d.Pattern)
	}
	fmt.Fprintf(out, "%d signature(s)\n", len(defs))
	return nil
}

func runSigsCheck(cmd *cobra.Command, args []string) error {
	defs, err := sigfile.NewLoader().LoadFile(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d signature(s) OK\n", args[0], len(defs))
	return nil
}
