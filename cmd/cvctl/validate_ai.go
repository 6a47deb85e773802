package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khoahotran/cv-studio/internal/core/aiexport"
)

var errInvalidDocument = errors.New("document is not a valid AI export")

func newValidateAICmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate-ai <file.json>",
		Short: "Check a document returned by an AI editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := readJSON(args[0])
			if err != nil {
				return err
			}

			res := aiexport.Validate(doc)
			if strict {
				if res, err = aiexport.ValidateStrict(doc); err != nil {
					return err
				}
			}
			if res.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return nil
			}
			for _, e := range res.Errors {
				fmt.Fprintln(cmd.OutOrStdout(), "-", e)
			}
			return errInvalidDocument
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Also reject fields the export format does not define")
	return cmd
}
