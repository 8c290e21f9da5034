package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"ot-grc/internal/export"

	"github.com/spf13/cobra"
)

func newScoreCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "score",
		Short: "Print risk summary and required actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sum := st.engine.Summary()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Overall risk score: %s (%s)\n", sum.OverallScore, sum.OverallLevel)
			fmt.Fprintf(out, "Initial risk: %d scenarios, %d high impact\n", sum.Initial.Total, sum.Initial.High)
			fmt.Fprintf(out, "High risk zones: %d\n", sum.HighRiskZones)
			fmt.Fprintf(out, "Threats above threshold: %d\n\n", sum.AboveThreshold)

			if len(sum.Threats) > 0 {
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "THREAT\tLIKELIHOOD\tBASE\tRESIDUAL\tLEVEL")
				for _, t := range sum.Threats {
					fmt.Fprintf(tw, "%s\t%s\t%.2f\t%.2f\t%s\n", t.Name, t.Likelihood, t.BaseRisk, t.Residual, t.Level)
				}
				_ = tw.Flush()
				fmt.Fprintln(out)
			}

			if len(sum.RequiredActions) == 0 {
				fmt.Fprintln(out, "No required actions.")
				return nil
			}
			fmt.Fprintln(out, "Required actions:")
			for i, a := range sum.RequiredActions {
				fmt.Fprintf(out, "%d. %s\n", i+1, a.Message)
			}
			return nil
		},
	}
}

func newImportCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Append assets from a CSV/XLSX/XLS inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			assets, err := st.engine.ImportFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d assets\n", len(assets))
			saveOrWarn(ctx, cmd.ErrOrStderr(), st.engine)
			return nil
		},
	}
}

func newExportCmd(st *cliState) *cobra.Command {
	var (
		format string
		output string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the assessment as json, csv or yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			a := st.engine.Snapshot()

			if output == "" {
				return export.Write(cmd.OutOrStdout(), f, a)
			}
			if output == "." {
				output = export.Filename(a, f)
			}
			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := export.Write(file, f, a); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "written %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "json|csv|yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", `output file ("." for the default file name)`)
	return cmd
}

func newCloneCmd(st *cliState) *cobra.Command {
	return &cobra.Command{
		Use:   "clone",
		Short: "Replace the assessment with a copy for a new review cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cp := st.engine.Clone()
			st.engine.Replace(cp)
			fmt.Fprintf(cmd.OutOrStdout(), "now editing %q (%s)\n", cp.Metadata.Name, cp.Metadata.Date)
			saveOrWarn(cmd.Context(), cmd.ErrOrStderr(), st.engine)
			return nil
		},
	}
}

func newStageCmd(st *cliState) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage [next|prev|N]",
		Short: "Show or move the current ZCR stage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := st.ctxWithUser(cmd.Context())
			state := st.engine.State()

			if len(args) == 1 {
				switch args[0] {
				case "next":
					state = st.engine.Next(ctx)
				case "prev":
					state = st.engine.Prev(ctx)
				default:
					n, err := strconv.Atoi(args[0])
					if err != nil {
						return fmt.Errorf("expected next, prev or a stage number, got %q", args[0])
					}
					if state, err = st.engine.JumpTo(ctx, n); err != nil {
						return err
					}
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (%.0f%%), next: %s\n", state.Label, state.Percent, state.NextLabel)
			return nil
		},
	}
	return cmd
}
