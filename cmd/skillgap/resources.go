package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/resources"
)

var resourcesCmd = &cobra.Command{
	Use:   "resources",
	Short: "Recommend learning resources for a skill",
	RunE:  runResources,
}

var (
	resourcesSkill  string
	resourcesOutput string
)

func init() {
	resourcesCmd.Flags().StringVarP(&resourcesSkill, "skill", "s", "", "Skill name (required)")
	resourcesCmd.Flags().StringVarP(&resourcesOutput, "out", "o", "", "Write JSON to this file instead of stdout")

	if err := resourcesCmd.MarkFlagRequired("skill"); err != nil {
		panic(fmt.Sprintf("failed to mark skill flag as required: %v", err))
	}

	rootCmd.AddCommand(resourcesCmd)
}

func runResources(cmd *cobra.Command, _ []string) error {
	skill := strings.TrimSpace(resourcesSkill)
	if skill == "" {
		return fmt.Errorf("--skill must not be blank")
	}
	list := resources.RecommendResources(skill)

	if p := printer(cmd); p != nil {
		p.PrintResources(skill, list)
	}
	return writeOutput(cmd, list, "", resourcesOutput)
}
