// Package pipeline drives one planning run: the four Planner calls, the
// Reviewer call, aggregation, rendering and persistence, strictly in that order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dyluth/planrun/internal/collab"
	"github.com/dyluth/planrun/internal/descriptor"
	"github.com/dyluth/planrun/internal/persist"
	"github.com/dyluth/planrun/internal/report"
	"github.com/dyluth/planrun/internal/summary"
)

// ErrNoWorkBreakdown is returned when the plan cannot feed the assign step.
var ErrNoWorkBreakdown = errors.New("project plan has no work_breakdown")

// Stage identifies a step of the run, reported through Options.OnStage.
type Stage string

const (
	StageStart        Stage = "start"
	StagePlan         Stage = "plan"
	StageAssignments  Stage = "assignments"
	StageMilestones   Stage = "milestones"
	StageTests        Stage = "test_requirements"
	StageReview       Stage = "review"
	StageReportSaved  Stage = "report_saved"
	StageSummarySaved Stage = "summary_saved"
)

// Options configures a run.
type Options struct {
	Project     descriptor.Project
	ProjectPath string // project root handed to the Reviewer
	OutputDir   string

	// Now defaults to time.Now.
	Now func() time.Time

	// OnStage, if set, is called as each stage begins. For the *Saved stages
	// detail is the written path.
	OnStage func(stage Stage, detail string)
}

// Result is what a completed run produced.
type Result struct {
	Report      *report.FinalReport
	ReportPath  string
	SummaryPath string
}

// Run executes the pipeline once. Any collaborator, encoding or write error
// aborts the run; nothing is persisted unless every call succeeded.
func Run(ctx context.Context, planner collab.Planner, reviewer collab.Reviewer, opts Options) (*Result, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	notify := opts.OnStage
	if notify == nil {
		notify = func(Stage, string) {}
	}

	d := opts.Project.Descriptor
	in := opts.Project.Planner

	notify(StageStart, d.Name)

	notify(StagePlan, "")
	plan, err := planner.CreateProjectPlan(ctx, collab.PlanRequest{
		ProjectName:        d.Name,
		ProjectDescription: d.Description,
		Requirements:       in.Requirements,
		Constraints:        in.Constraints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project plan: %w", err)
	}

	// Only a missing key is fatal; an empty or null breakdown is passed through.
	workBreakdown, present := plan["work_breakdown"]
	if !present {
		return nil, ErrNoWorkBreakdown
	}

	notify(StageAssignments, "")
	assignments, err := planner.AssignWork(ctx, collab.AssignRequest{
		WorkBreakdown:   workBreakdown,
		AvailableAgents: in.AvailableAgents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to assign work: %w", err)
	}

	notify(StageMilestones, "")
	milestones, err := planner.CreateMilestones(ctx, collab.MilestoneRequest{
		ProjectName:  d.Name,
		Phases:       in.Phases,
		TimelineDays: in.TimelineDays,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create milestones: %w", err)
	}

	notify(StageTests, "")
	testRequirements, err := planner.DefineTestRequirements(ctx, collab.TestRequest{
		ProjectName:  d.Name,
		TestTypes:    in.TestTypes,
		SpecialFocus: in.SpecialFocus,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to define test requirements: %w", err)
	}

	notify(StageReview, "")
	review, err := reviewer.PlanAndReviewProject(ctx, collab.ReviewRequest{
		ProjectName:  d.Name,
		ProjectPath:  opts.ProjectPath,
		Requirements: opts.Project.Reviewer.Requirements,
		Constraints:  opts.Project.Reviewer.Constraints,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to run integrated planning review: %w", err)
	}

	// One reading stamps both planning_date and the file names.
	plannedAt := now()
	final := report.Aggregate(report.Inputs{
		Project:          d,
		PlannedAt:        plannedAt,
		Plan:             plan,
		Assignments:      assignments,
		Milestones:       milestones,
		TestRequirements: testRequirements,
		Review:           review,
	})

	reportPath := persist.ReportPath(opts.OutputDir, d.Name, plannedAt)
	if err := persist.WriteReport(reportPath, final); err != nil {
		return nil, err
	}
	notify(StageReportSaved, reportPath)

	summaryPath := persist.SummaryPath(reportPath)
	if err := persist.WriteSummary(summaryPath, summary.Render(final)); err != nil {
		return nil, err
	}
	notify(StageSummarySaved, summaryPath)

	return &Result{
		Report:      final,
		ReportPath:  reportPath,
		SummaryPath: summaryPath,
	}, nil
}
