package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/adapters/pdf"
	"github.com/khoahotran/cv-studio/internal/config"
	"github.com/khoahotran/cv-studio/internal/core/render"
	"github.com/khoahotran/cv-studio/pkg/logger"
)

func newRenderCmd() *cobra.Command {
	var recordsPath, templatePath, format, outPath string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the CV held in a JSON export as text, HTML or PDF",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := projectedRecords(recordsPath, templatePath)
			if err != nil {
				return err
			}
			view := render.Build(records)

			switch format {
			case "text":
				return writeOutput(cmd.OutOrStdout(), outPath, []byte(view.Text()))
			case "html":
				html, err := render.Document(view)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), outPath, html)
			case "pdf":
				if outPath == "" || outPath == "-" {
					return fmt.Errorf("--out is required for pdf")
				}
				html, err := render.Document(view)
				if err != nil {
					return err
				}
				cfg, err := config.LoadConfig()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				data, err := pdf.NewChromedpRenderer(cfg, logger.NewNop()).PrintPDF(context.Background(), html)
				if err != nil {
					return err
				}
				return writeOutput(cmd.OutOrStdout(), outPath, data)
			}
			return fmt.Errorf("unknown format %q (text, html, pdf)", format)
		},
	}
	cmd.Flags().StringVarP(&recordsPath, "records", "r", "", "Full JSON export holding the records")
	cmd.Flags().StringVarP(&templatePath, "template", "t", "", "Template file to project the records through")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, html or pdf")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	_ = cmd.MarkFlagRequired("records")
	return cmd
}
