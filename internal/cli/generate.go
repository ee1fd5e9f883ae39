package cli

import (
	"github.com/spf13/cobra"
)

func newGenerateCmd(rt func() *Runtime) *cobra.Command {
	var briefPath, answersPath, outPath string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a day-by-day itinerary for a brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			brief, err := readBrief(briefPath)
			if err != nil {
				return err
			}
			if answersPath != "" {
				answers, err := readAnswers(answersPath)
				if err != nil {
					return err
				}
				brief.ClarifyingAnswers = append(brief.ClarifyingAnswers, answers...)
			}

			result, err := rt().Generator.GenerateItinerary(cmd.Context(), brief)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outPath, result)
		},
	}

	cmd.Flags().StringVar(&briefPath, "brief", "", "path to a trip brief JSON file")
	cmd.Flags().StringVar(&answersPath, "answers", "", "optional JSON array of {question, answer} pairs")
	cmd.Flags().StringVar(&outPath, "out", "", "write the itinerary here instead of stdout")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}
