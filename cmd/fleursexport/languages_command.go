package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"fleursexport/internal/config"
	"fleursexport/internal/language"
)

func newLanguagesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "languages [code...]",
		Short: "Show language codes with display names",
		Long:  "Without arguments, lists the configured export languages. With arguments, validates each code.",
		RunE: func(cmd *cobra.Command, args []string) error {
			codes := config.NormalizeLanguages(args)
			if len(codes) == 0 {
				cfg, err := ctx.ensureConfig()
				if err != nil {
					return err
				}
				codes = cfg.Export.Languages
			}

			rows := make([][]string, 0, len(codes))
			invalid := 0
			for _, code := range codes {
				valid := "yes"
				if err := language.Validate(code); err != nil {
					valid = "no"
					invalid++
				}
				rows = append(rows, []string{code, language.DisplayName(code), language.ISO3(code), valid})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Code", "Language", "ISO 639-3", "Valid"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
			))
			if invalid > 0 {
				return fmt.Errorf("%d invalid language code(s)", invalid)
			}
			return nil
		},
	}
}
