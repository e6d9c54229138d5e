package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/skills"
)

var inferCmd = &cobra.Command{
	Use:   "infer",
	Short: "Infer required skills for a custom role title",
	RunE:  runInfer,
}

var (
	inferRole   string
	inferOutput string
)

// inferResult is the JSON output of the infer command.
type inferResult struct {
	Title  string   `json:"title"`
	Rule   string   `json:"rule,omitempty"`
	Skills []string `json:"skills"`
}

func init() {
	inferCmd.Flags().StringVar(&inferRole, "role", "", "Role title, e.g. \"Blockchain Security Auditor\" (required)")
	inferCmd.Flags().StringVarP(&inferOutput, "out", "o", "", "Write JSON to this file instead of stdout")

	if err := inferCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(inferCmd)
}

func runInfer(cmd *cobra.Command, _ []string) error {
	inferencer := skills.NewInferencer(skills.DefaultRoleRules())
	res := inferResult{
		Title:  strings.TrimSpace(inferRole),
		Rule:   inferencer.MatchedRule(inferRole),
		Skills: inferencer.Infer(inferRole),
	}

	if p := printer(cmd); p != nil {
		p.PrintInferredSkills(res.Title, res.Rule, res.Skills)
	}
	return writeOutput(cmd, res, "", inferOutput)
}
