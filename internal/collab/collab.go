// Package collab defines the two external collaborators a planning run depends
// on, the Planner and the Reviewer, and a blackboard-backed implementation of
// both. Their internals (work breakdown, scheduling, milestone computation,
// review heuristics) live in the agents answering on the blackboard.
package collab

import "context"

// Planner produces the project plan and its derived artefacts.
type Planner interface {
	CreateProjectPlan(ctx context.Context, req PlanRequest) (Record, error)
	AssignWork(ctx context.Context, req AssignRequest) ([]Record, error)
	CreateMilestones(ctx context.Context, req MilestoneRequest) ([]Record, error)
	DefineTestRequirements(ctx context.Context, req TestRequest) (any, error)
}

// Reviewer runs the integrated plan-and-review pass over a project.
type Reviewer interface {
	PlanAndReviewProject(ctx context.Context, req ReviewRequest) (Record, error)
}

// PlanRequest asks the Planner for a project plan. The returned plan must
// carry a work_breakdown entry.
type PlanRequest struct {
	ProjectName        string   `json:"project_name"`
	ProjectDescription string   `json:"project_description"`
	Requirements       []string `json:"requirements"`
	Constraints        []string `json:"constraints"`
}

// AssignRequest asks the Planner to distribute a work breakdown over agents.
type AssignRequest struct {
	WorkBreakdown   any      `json:"work_breakdown"`
	AvailableAgents []string `json:"available_agents"`
}

// MilestoneRequest asks the Planner for milestones across the given phases.
type MilestoneRequest struct {
	ProjectName  string   `json:"project_name"`
	Phases       []string `json:"phases"`
	TimelineDays int      `json:"timeline_days"`
}

// TestRequest asks the Planner for test requirements.
type TestRequest struct {
	ProjectName  string   `json:"project_name"`
	TestTypes    []string `json:"test_types"`
	SpecialFocus []string `json:"special_focus"`
}

// ReviewRequest asks the Reviewer for an integrated plan review.
type ReviewRequest struct {
	ProjectName  string   `json:"project_name"`
	ProjectPath  string   `json:"project_path"`
	Requirements []string `json:"requirements"`
	Constraints  []string `json:"constraints"`
}

// Operation names a collaborator call. Each maps to a request artefact type
// on the blackboard.
type Operation string

const (
	OpCreateProjectPlan      Operation = "create_project_plan"
	OpAssignWork             Operation = "assign_work"
	OpCreateMilestones       Operation = "create_milestones"
	OpDefineTestRequirements Operation = "define_test_requirements"
	OpPlanAndReviewProject   Operation = "plan_and_review_project"
)

// RequestType returns the artefact type used to post this operation.
func (op Operation) RequestType() string {
	switch op {
	case OpCreateProjectPlan:
		return "PlanRequest"
	case OpAssignWork:
		return "AssignWorkRequest"
	case OpCreateMilestones:
		return "MilestonesRequest"
	case OpDefineTestRequirements:
		return "TestRequirementsRequest"
	case OpPlanAndReviewProject:
		return "PlanReviewRequest"
	default:
		return string(op)
	}
}
