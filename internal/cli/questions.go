package cli

import (
	"github.com/spf13/cobra"

	"wanderplan/internal/models/response_models"
)

func newQuestionsCmd(rt func() *Runtime) *cobra.Command {
	var briefPath string

	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Print up to three yes/no clarifying questions for a brief",
		RunE: func(cmd *cobra.Command, args []string) error {
			brief, err := readBrief(briefPath)
			if err != nil {
				return err
			}
			questions := rt().Planner.PlanQuestions(cmd.Context(), brief)
			return writeJSON(cmd.OutOrStdout(), "", response_models.QuestionsResponse{Questions: questions})
		},
	}

	cmd.Flags().StringVar(&briefPath, "brief", "", "path to a trip brief JSON file")
	_ = cmd.MarkFlagRequired("brief")
	return cmd
}
