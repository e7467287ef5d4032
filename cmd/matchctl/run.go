package main

import (
	"github.com/spf13/cobra"

	"github.com/gdugdh24/opportunity-matcher/internal/usecase/matching"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a matching pass for one student and print the result",
	RunE: func(cmd *cobra.Command, _ []string) error {
		studentID, _ := cmd.Flags().GetString("student-id")

		c, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.Matching.Run(cmd.Context(), matching.RunRequest{StudentID: studentID})
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion-check",
	Short: "Print how complete a student profile is",
	RunE: func(cmd *cobra.Command, _ []string) error {
		studentID, _ := cmd.Flags().GetString("student-id")

		c, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.Matching.CheckCompletion(cmd.Context(), studentID)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List the stored matches of a student, newest first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		studentID, _ := cmd.Flags().GetString("student-id")
		limit, _ := cmd.Flags().GetInt("limit")

		c, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer c.Close()

		resp, err := c.Matching.ListMatches(cmd.Context(), studentID, limit)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{runCmd, completionCmd, matchesCmd} {
		cmd.Flags().StringP("student-id", "s", "", "student profile id")
		cmd.MarkFlagRequired("student-id")
		rootCmd.AddCommand(cmd)
	}
	matchesCmd.Flags().IntP("limit", "l", 0, "maximum number of matches (default 10)")
}
