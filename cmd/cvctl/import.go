package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/internal/core/reconcile"
)

func newImportCmd() *cobra.Command {
	var recordsPath, outPath string
	cmd := &cobra.Command{
		Use:   "import <template.json>",
		Short: "Reconcile a template file against the records of a full export",
		Long:  "Reconciles a template JSON file against the records in --records and prints the recovered template input, warnings and match counts. Nothing is written to the database.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := readRecords(recordsPath)
			if err != nil {
				return err
			}
			doc, err := readJSON(args[0])
			if err != nil {
				return err
			}

			res := reconcile.Reconcile(doc, records, reconcile.Options{Now: nowFunc})
			for _, w := range res.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			return writeJSON(cmd.OutOrStdout(), outPath, res)
		},
	}
	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Full JSON export holding the current records")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
