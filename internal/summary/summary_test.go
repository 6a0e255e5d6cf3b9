package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/dyluth/planrun/internal/collab"
	"github.com/dyluth/planrun/internal/descriptor"
	"github.com/dyluth/planrun/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyReport() *report.FinalReport {
	return report.Aggregate(report.Inputs{
		Project:   descriptor.MinecraftSkinStudio().Descriptor,
		PlannedAt: time.Date(2026, 10, 18, 9, 30, 15, 0, time.Local),
		Plan:      collab.Record{"work_breakdown": []any{}, "phases": []any{}},
		Review:    collab.Record{},
	})
}

// section returns the body between "## <name>" and the next "## " heading.
func section(t *testing.T, doc, name string) string {
	t.Helper()
	header := "## " + name + "\n"
	start := strings.Index(doc, header)
	require.GreaterOrEqual(t, start, 0, "section %q missing", name)
	body := doc[start+len(header):]
	if end := strings.Index(body, "\n## "); end >= 0 {
		body = body[:end+1]
	}
	return body
}

func TestFeatureTitle(t *testing.T) {
	tests := []struct {
		feature  string
		expected string
	}{
		{feature: "pixel_editor", expected: "Pixel Editor"},
		{feature: "ai_assistance", expected: "Ai Assistance"},
		{feature: "3d_preview", expected: "3D Preview"},
		{feature: "safe_sharing", expected: "Safe Sharing"},
		{feature: "educational", expected: "Educational"},
		{feature: "PWA_mode", expected: "Pwa Mode"},
		{feature: "", expected: ""},
		{feature: "café_menu", expected: "Café Menu"},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			assert.Equal(t, tt.expected, FeatureTitle(tt.feature))
		})
	}
}

func TestRender_FullReport(t *testing.T) {
	r := report.Aggregate(report.Inputs{
		Project:   descriptor.MinecraftSkinStudio().Descriptor,
		PlannedAt: time.Date(2026, 10, 18, 9, 30, 15, 500000000, time.Local),
		Plan: collab.Record{
			"work_breakdown": []any{"editor"},
			"phases": []any{
				map[string]any{"name": "Design", "duration": "2 weeks", "deliverables": []any{"Wireframes", "Safety review"}},
				map[string]any{"name": "Build"},
			},
		},
		Assignments: []collab.Record{
			{"assigned_to": "Cipher", "task_description": "COPPA audit", "priority": "high"},
		},
		Milestones: []collab.Record{
			{"name": "Alpha", "description": "Editor usable"},
		},
		Review: collab.Record{"recommendations": []any{"Start with templates"}},
	})

	expected := `# Minecraft Skin Studio - Development Plan Summary

Generated: 2026-10-18T09:30:15.500000

## Project Overview
- **Name**: minecraft-skin-studio
- **Type**: web_application
- **Description**: AI-powered Minecraft skin creator for kids
- **Target Users**: Children ages 7-12

## Key Features
- Pixel Editor
- Ai Assistance
- 3D Preview
- Safe Sharing
- Educational

## Development Phases

### Design
**Duration**: 2 weeks
**Key Deliverables**:
- Wireframes
- Safety review

### Build
**Duration**: TBD
**Key Deliverables**:

## Agent Assignments

### Cipher
**Task**: COPPA audit
**Priority**: high

## Key Milestones

- **Alpha**: Editor usable

## Success Metrics

- **Time to First Skin**: < 5 minutes
- **AI Helpfulness**: 80% positive feedback
- **Safety Incidents**: 0 incidents
- **Parent Satisfaction**: 90% approval
- **Child Engagement**: 30 min average session

## Key Recommendations

- Start with templates
`
	assert.Equal(t, expected, Render(r))
}

func TestRender_FeaturesInOrder(t *testing.T) {
	r := emptyReport()
	r.Project.KeyFeatures = []string{"zeta_mode", "alpha_mode", "mid_mode"}

	body := section(t, Render(r), "Key Features")
	assert.Equal(t, "- Zeta Mode\n- Alpha Mode\n- Mid Mode\n\n", body)
}

func TestRender_EmptyCollaboratorOutput(t *testing.T) {
	doc := Render(emptyReport())

	assert.Contains(t, doc, "## Project Overview")
	assert.Contains(t, doc, "## Success Metrics")
	assert.Equal(t, "\n", section(t, doc, "Development Phases"))
	assert.Equal(t, "\n", section(t, doc, "Agent Assignments"))
	assert.Equal(t, "\n\n", section(t, doc, "Key Milestones"))
	assert.True(t, strings.HasSuffix(doc, "## Key Recommendations\n\n"), "recommendations body should be empty")
}

func TestRender_MissingOptionalFields(t *testing.T) {
	r := emptyReport()
	r.ProjectPlan = collab.Record{"phases": []any{map[string]any{"duration": nil}}}
	r.AgentAssignments = []collab.Record{{}}
	r.Milestones = []collab.Record{{"name": "Beta"}, {"description": "no name"}}

	doc := Render(r)

	assert.Contains(t, doc, "### \n**Duration**: TBD\n**Key Deliverables**:\n\n")
	assert.Contains(t, doc, "### \n**Task**: \n**Priority**: \n\n")
	assert.Contains(t, doc, "- **Beta**: \n")
	assert.Contains(t, doc, "- ****: no name\n")
}

func TestRender_PlanWithoutPhases(t *testing.T) {
	tests := []struct {
		name string
		plan collab.Record
	}{
		{name: "nil plan", plan: nil},
		{name: "no phases key", plan: collab.Record{"work_breakdown": []any{}}},
		{name: "phases not a list", plan: collab.Record{"phases": "later"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := emptyReport()
			r.ProjectPlan = tt.plan
			assert.Equal(t, "\n", section(t, Render(r), "Development Phases"))
		})
	}
}

func TestRender_NumericDuration(t *testing.T) {
	r := emptyReport()
	r.ProjectPlan = collab.Record{"phases": []any{map[string]any{"name": "Testing", "duration": 14.0}}}

	assert.Contains(t, Render(r), "**Duration**: 14\n")
}
