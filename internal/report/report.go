// Package report merges collaborator outputs into the FinalReport persisted at
// the end of a planning run.
package report

import (
	"time"

	"github.com/dyluth/planrun/internal/collab"
	"github.com/dyluth/planrun/internal/descriptor"
)

// SuccessMetric is a project-specific target the plan is measured against.
type SuccessMetric struct {
	Metric      string `json:"metric"`
	Target      string `json:"target"`
	Measurement string `json:"measurement"`
}

// FinalReport is the aggregate record written once per run. Field order is the
// key order of the JSON report.
type FinalReport struct {
	Project            descriptor.ProjectDescriptor `json:"project"`
	PlanningDate       string                       `json:"planning_date"`
	ProjectPlan        collab.Record                `json:"project_plan"`
	AgentAssignments   []collab.Record              `json:"agent_assignments"`
	Milestones         []collab.Record              `json:"milestones"`
	TestRequirements   any                          `json:"test_requirements"`
	IntegratedAnalysis collab.Record                `json:"integrated_analysis"`
	KeyRecommendations []string                     `json:"key_recommendations"`
	RiskAssessment     []any                        `json:"risk_assessment"` // never populated
	SuccessMetrics     []SuccessMetric              `json:"success_metrics"`
}

// Inputs carries everything Aggregate merges.
type Inputs struct {
	Project          descriptor.ProjectDescriptor
	PlannedAt        time.Time
	Plan             collab.Record
	Assignments      []collab.Record
	Milestones       []collab.Record
	TestRequirements any
	Review           collab.Record
}

// SuccessMetrics returns a fresh copy of the fixed project success metrics.
func SuccessMetrics() []SuccessMetric {
	return []SuccessMetric{
		{Metric: "Time to First Skin", Target: "< 5 minutes", Measurement: "From app open to exported skin"},
		{Metric: "AI Helpfulness", Target: "80% positive feedback", Measurement: "User ratings of AI suggestions"},
		{Metric: "Safety Incidents", Target: "0 incidents", Measurement: "Inappropriate content or data exposure"},
		{Metric: "Parent Satisfaction", Target: "90% approval", Measurement: "Parent survey results"},
		{Metric: "Child Engagement", Target: "30 min average session", Measurement: "Time spent creating"},
	}
}

// Aggregate builds the FinalReport. It does not modify its inputs.
func Aggregate(in Inputs) *FinalReport {
	r := &FinalReport{
		Project:            in.Project,
		PlanningDate:       FormatPlanningDate(in.PlannedAt),
		ProjectPlan:        in.Plan,
		AgentAssignments:   nonNil(in.Assignments),
		Milestones:         nonNil(in.Milestones),
		TestRequirements:   in.TestRequirements,
		IntegratedAnalysis: in.Review,
		KeyRecommendations: []string{},
		RiskAssessment:     []any{},
		SuccessMetrics:     SuccessMetrics(),
	}

	if len(in.Review) > 0 {
		if recs, ok := in.Review.Strings("recommendations"); ok {
			r.KeyRecommendations = recs
		}
	}

	return r
}

// FormatPlanningDate renders t as a local ISO-8601 timestamp without zone,
// with microseconds only when they are non-zero.
func FormatPlanningDate(t time.Time) string {
	if t.Nanosecond()/1000 == 0 {
		return t.Format("2006-01-02T15:04:05")
	}
	return t.Format("2006-01-02T15:04:05.000000")
}

func nonNil(records []collab.Record) []collab.Record {
	if records == nil {
		return []collab.Record{}
	}
	return records
}
