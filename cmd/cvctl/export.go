package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/internal/core/aiexport"
	"github.com/khoahotran/cv-studio/internal/core/export"
	"github.com/khoahotran/cv-studio/internal/core/reconcile"
	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/internal/domain/template"
)

// projectedRecords loads records and, when templatePath is set, narrows them
// to what the reconciled template selects.
func projectedRecords(recordsPath, templatePath string) (cv.Records, error) {
	records, err := readRecords(recordsPath)
	if err != nil || templatePath == "" {
		return records, err
	}
	doc, err := readJSON(templatePath)
	if err != nil {
		return cv.Records{}, err
	}
	res := reconcile.Reconcile(doc, records, reconcile.Options{Now: nowFunc})
	t := &template.Template{Input: res.Input}
	return t.Project(records), nil
}

func newExportCmd() *cobra.Command {
	var recordsPath, templatePath, format, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON or AI export from a full export file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := projectedRecords(recordsPath, templatePath)
			if err != nil {
				return err
			}
			now := nowFunc()

			var file *export.File
			switch format {
			case "json":
				file, err = export.JSONFile(export.FullFileName(now), export.FullDocument(records, now))
			case "ai":
				file, err = export.JSONFile(export.AIFileName(now), aiexport.Format(records, now))
			default:
				return fmt.Errorf("unknown format %q (json, ai)", format)
			}
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = "-"
			}
			if outPath == "." {
				outPath = file.Name
			}
			return writeOutput(cmd.OutOrStdout(), outPath, file.Data)
		},
	}
	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Full JSON export holding the records")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file to project the records through")
	cmd.Flags().StringVarP(&format, "format", "f", "ai", "Export format: json or ai")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", `Output file, "." for the default file name (default stdout)`)
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
