package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/dyluth/planrun/pkg/blackboard"
)

// ProducerRole is the produced_by_role stamped on every request artefact.
const ProducerRole = "planrun"

// CallError reports a collaborator that answered a request with a Failure artefact.
type CallError struct {
	Op         Operation
	ArtefactID string
	Message    string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("%s failed (artefact %s): %s", e.Op, e.ArtefactID, e.Message)
}

// Blackboard reaches the Planner and Reviewer through a Holt blackboard.
// Each call posts a request artefact and blocks until an artefact derived from
// it arrives. It implements both Planner and Reviewer.
type Blackboard struct {
	client  *blackboard.Client
	timeout time.Duration
}

var (
	_ Planner  = (*Blackboard)(nil)
	_ Reviewer = (*Blackboard)(nil)
)

// NewBlackboard returns collaborators backed by client. A zero timeout means
// calls wait until ctx is done.
func NewBlackboard(client *blackboard.Client, timeout time.Duration) *Blackboard {
	return &Blackboard{client: client, timeout: timeout}
}

func (b *Blackboard) CreateProjectPlan(ctx context.Context, req PlanRequest) (Record, error) {
	var plan Record
	if err := b.call(ctx, OpCreateProjectPlan, req, &plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (b *Blackboard) AssignWork(ctx context.Context, req AssignRequest) ([]Record, error) {
	var assignments []Record
	if err := b.call(ctx, OpAssignWork, req, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

func (b *Blackboard) CreateMilestones(ctx context.Context, req MilestoneRequest) ([]Record, error) {
	var milestones []Record
	if err := b.call(ctx, OpCreateMilestones, req, &milestones); err != nil {
		return nil, err
	}
	return milestones, nil
}

func (b *Blackboard) DefineTestRequirements(ctx context.Context, req TestRequest) (any, error) {
	var requirements any
	if err := b.call(ctx, OpDefineTestRequirements, req, &requirements); err != nil {
		return nil, err
	}
	return requirements, nil
}

func (b *Blackboard) PlanAndReviewProject(ctx context.Context, req ReviewRequest) (Record, error) {
	var review Record
	if err := b.call(ctx, OpPlanAndReviewProject, req, &review); err != nil {
		return nil, err
	}
	return review, nil
}

// call posts req for op and decodes the first derived result into out.
// The subscription is opened before the request is written so the answer
// cannot be missed.
func (b *Blackboard) call(ctx context.Context, op Operation, req any, out any) error {
	if b.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	sub, err := b.client.SubscribeArtefactEvents(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe for %s result: %w", op, err)
	}
	defer sub.Close()

	request := blackboard.NewArtefact(op.RequestType(), string(payload), ProducerRole)
	if err := b.client.CreateArtefact(ctx, request); err != nil {
		return fmt.Errorf("failed to post %s request: %w", op, err)
	}
	log.Printf("[Blackboard] Posted %s request %s on instance '%s'", op, request.ID, b.client.InstanceName())

	errs := sub.Errors()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s result: %w", op, ctx.Err())

		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Printf("[Blackboard] Subscription error: %v", err)

		case a, ok := <-sub.Events():
			if !ok {
				return fmt.Errorf("subscription closed before %s result arrived", op)
			}
			if a.ID == request.ID || !a.DerivedFrom(request.ID) {
				continue
			}
			return b.readResult(ctx, op, a.ID, out)
		}
	}
}

// readResult loads the stored result artefact and decodes its payload into out.
// Numbers are kept as json.Number so collaborator values reach the report unchanged.
func (b *Blackboard) readResult(ctx context.Context, op Operation, id string, out any) error {
	a, err := b.client.GetArtefact(ctx, id)
	if blackboard.IsNotFound(err) {
		return &CallError{Op: op, ArtefactID: id, Message: "result artefact announced but not stored"}
	}
	if err != nil {
		return fmt.Errorf("failed to read %s result %s: %w", op, id, err)
	}

	switch a.StructuralType {
	case blackboard.StructuralTypeFailure:
		return &CallError{Op: op, ArtefactID: a.ID, Message: a.Payload}
	case blackboard.StructuralTypeTerminal:
		return &CallError{Op: op, ArtefactID: a.ID, Message: "workflow terminated without a result: " + a.Payload}
	}

	dec := json.NewDecoder(strings.NewReader(a.Payload))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s result %s: %w", op, a.ID, err)
	}
	log.Printf("[Blackboard] Received %s result %s from '%s'", op, a.ID, a.ProducedByRole)
	return nil
}
