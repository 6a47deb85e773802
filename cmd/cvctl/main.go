// Command cvctl works with CV exports offline and seeds the owner account.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/internal/domain/cv"
	"github.com/khoahotran/cv-studio/pkg/jsonx"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cvctl",
		Short:         "CV Studio command line tools",
		Long:          "cvctl reconciles template files, renders and exports CVs from JSON exports, validates AI-edited documents, seeds the owner account and backs it up.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSeedOwnerCmd(),
		newImportCmd(),
		newValidateAICmd(),
		newRenderCmd(),
		newExportCmd(),
		newBackupCmd(),
	)
	return root
}

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// nowFunc is replaced in tests.
var nowFunc = time.Now

func readJSON(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := jsonx.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid JSON: %w", path, err)
	}
	return doc, nil
}

// readRecords loads the records section of a full JSON export.
func readRecords(path string) (cv.Records, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cv.Records{}, fmt.Errorf("read %s: %w", path, err)
	}
	var r cv.Records
	if err := json.Unmarshal(data, &r); err != nil {
		return cv.Records{}, fmt.Errorf("%s is not a CV export: %w", path, err)
	}
	return r.Sorted(), nil
}

// writeOutput writes data to path, or to w when path is empty or "-".
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(w, path, append(data, '\n'))
}
