package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-gap-navigator/internal/roadmap"
	"github.com/jonathan/skill-gap-navigator/internal/schemas"
	"github.com/jonathan/skill-gap-navigator/internal/types"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Plan a weekly learning roadmap for missing skills",
	Long: "Orders the given skills from foundational to advanced and packs them into at most --weeks weekly " +
		"units with topics and learning resources.",
	RunE: runRoadmap,
}

var (
	roadmapSkills  string
	roadmapWeeks   int
	roadmapCatalog string
	roadmapOutput  string
)

func init() {
	roadmapCmd.Flags().StringVar(&roadmapSkills, "skills", "", "Comma-separated missing skills (required)")
	roadmapCmd.Flags().IntVarP(&roadmapWeeks, "weeks", "w", roadmap.DefaultWeeks, "Number of weeks to plan")
	roadmapCmd.Flags().StringVar(&roadmapCatalog, "catalog", "", "YAML skill catalog to use instead of the built-in one")
	roadmapCmd.Flags().StringVarP(&roadmapOutput, "out", "o", "", "Write JSON to this file instead of stdout")

	if err := roadmapCmd.MarkFlagRequired("skills"); err != nil {
		panic(fmt.Sprintf("failed to mark skills flag as required: %v", err))
	}

	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(cmd *cobra.Command, _ []string) error {
	catalogPath := roadmapCatalog
	if catalogPath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		catalogPath = cfg.CatalogPath
	}

	gen, err := loadGenerator(catalogPath, false)
	if err != nil {
		return err
	}
	plan := gen.Generate(splitList(roadmapSkills), roadmapWeeks)

	if p := printer(cmd); p != nil {
		p.PrintRoadmap(plan)
	}
	return writeOutput(cmd, types.RoadmapResponse{Roadmap: plan}, schemas.Roadmap, roadmapOutput)
}
