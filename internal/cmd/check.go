package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamilvitek/frix/internal/components"
	"github.com/kamilvitek/frix/internal/pagecheck"
)

func newCheckCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the landing page content contract",
		Long: `Render the landing page and verify its markup: one form with five
controls, three "How It Works" steps, three benefits, and the footer links.
Rendering is also checked to produce identical bytes every time.

--file verifies an already exported HTML file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				report pagecheck.Report
				err    error
			)
			if file != "" {
				report, err = checkFile(file)
			} else {
				report, err = pagecheck.Run(cmd.Context(), components.Render)
			}
			if err != nil {
				return err
			}

			if report.OK() {
				fmt.Fprintln(cmd.OutOrStdout(), "Content contract satisfied")
				return nil
			}
			for _, v := range report.Violations {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", v)
			}
			return fmt.Errorf("%d content contract violation(s)", len(report.Violations))
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "verify this HTML file instead of a fresh render")

	return cmd
}

func checkFile(path string) (pagecheck.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return pagecheck.Report{}, fmt.Errorf("file %s does not exist", path)
		}
		return pagecheck.Report{}, err
	}
	defer f.Close()

	return pagecheck.Verify(f)
}
