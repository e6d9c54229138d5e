package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/schemas"
	"github.com/jonathan/skill-gap-navigator/internal/skills"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compare resume skills against required skills",
	Long: "Compares a comma-separated list of resume skills against required skills and prints the matched, " +
		"missing and extra skills with the match percentage. Use --role instead of --required to infer the " +
		"required skills from a custom role title.",
	RunE: runAnalyze,
}

var (
	analyzeResume   string
	analyzeRequired string
	analyzeRole     string
	analyzeAliases  bool
	analyzeOutput   string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResume, "resume", "r", "", "Comma-separated resume skills (required)")
	analyzeCmd.Flags().StringVar(&analyzeRequired, "required", "", "Comma-separated required skills")
	analyzeCmd.Flags().StringVar(&analyzeRole, "role", "", "Custom role title to infer required skills from")
	analyzeCmd.Flags().BoolVar(&analyzeAliases, "aliases", false, "Resolve skill aliases such as nodejs and k8s before comparing")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write JSON to this file instead of stdout")

	if err := analyzeCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}
	analyzeCmd.MarkFlagsOneRequired("required", "role")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	required := splitList(analyzeRequired)
	label := "Required skills"
	if len(required) == 0 {
		title := strings.TrimSpace(analyzeRole)
		if title == "" {
			return fmt.Errorf("either --required or a non-empty --role is needed")
		}
		required = skills.InferSkills(title)
		label = title
	}

	analyzer := skills.NewAnalyzer(skills.WithAliases(analyzeAliases))
	result := analyzer.Analyze(splitList(analyzeResume), required)

	if p := printer(cmd); p != nil {
		p.PrintGapResult(label, result)
	}
	return writeOutput(cmd, result, schemas.GapResult, analyzeOutput)
}
