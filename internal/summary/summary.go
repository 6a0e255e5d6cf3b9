// Package summary renders a FinalReport as a human-readable Markdown document.
package summary

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dyluth/planrun/internal/collab"
	"github.com/dyluth/planrun/internal/report"
)

const (
	documentTitle = "Minecraft Skin Studio - Development Plan Summary"
	targetUsers   = "Children ages 7-12"
	noDuration    = "TBD"
)

// Render returns the Markdown summary of r. Every collaborator-provided field
// is optional: absent values render empty (or TBD for phase duration) and
// their sections are still emitted.
func Render(r *report.FinalReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", documentTitle)
	fmt.Fprintf(&b, "Generated: %s\n\n", r.PlanningDate)

	b.WriteString("## Project Overview\n")
	fmt.Fprintf(&b, "- **Name**: %s\n", r.Project.Name)
	fmt.Fprintf(&b, "- **Type**: %s\n", r.Project.Type)
	fmt.Fprintf(&b, "- **Description**: %s\n", r.Project.Description)
	fmt.Fprintf(&b, "- **Target Users**: %s\n", targetUsers)

	b.WriteString("\n## Key Features\n")
	for _, feature := range r.Project.KeyFeatures {
		fmt.Fprintf(&b, "- %s\n", FeatureTitle(feature))
	}

	b.WriteString("\n## Development Phases\n\n")
	if phases, ok := r.ProjectPlan.Records("phases"); ok {
		for _, phase := range phases {
			writePhase(&b, phase)
		}
	}

	b.WriteString("## Agent Assignments\n\n")
	for _, a := range r.AgentAssignments {
		fmt.Fprintf(&b, "### %s\n", a.TextOr("assigned_to", ""))
		fmt.Fprintf(&b, "**Task**: %s\n", a.TextOr("task_description", ""))
		fmt.Fprintf(&b, "**Priority**: %s\n\n", a.TextOr("priority", ""))
	}

	b.WriteString("## Key Milestones\n\n")
	for _, m := range r.Milestones {
		fmt.Fprintf(&b, "- **%s**: %s\n", m.TextOr("name", ""), m.TextOr("description", ""))
	}

	b.WriteString("\n## Success Metrics\n\n")
	for _, m := range r.SuccessMetrics {
		fmt.Fprintf(&b, "- **%s**: %s\n", m.Metric, m.Target)
	}

	b.WriteString("\n## Key Recommendations\n\n")
	for _, rec := range r.KeyRecommendations {
		fmt.Fprintf(&b, "- %s\n", rec)
	}

	return b.String()
}

func writePhase(b *strings.Builder, phase collab.Record) {
	fmt.Fprintf(b, "### %s\n", phase.TextOr("name", ""))
	fmt.Fprintf(b, "**Duration**: %s\n", phase.TextOr("duration", noDuration))
	b.WriteString("**Key Deliverables**:\n")
	if deliverables, ok := phase.Strings("deliverables"); ok {
		for _, d := range deliverables {
			fmt.Fprintf(b, "- %s\n", d)
		}
	}
	b.WriteString("\n")
}

// FeatureTitle turns a feature identifier into a heading: underscores become
// spaces, a letter following a non-letter is upper-cased and every other
// letter lower-cased ("3d_preview" -> "3D Preview").
func FeatureTitle(feature string) string {
	var b strings.Builder
	b.Grow(len(feature))

	prevLetter := false
	for _, r := range strings.ReplaceAll(feature, "_", " ") {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
