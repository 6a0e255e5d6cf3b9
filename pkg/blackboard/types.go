package blackboard

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Artefact represents an immutable work product on the blackboard.
// planrun writes request artefacts and reads the result artefacts written by
// the planning agents.
type Artefact struct {
	ID              string         `json:"id"`               // UUID - unique identifier for this artefact
	LogicalID       string         `json:"logical_id"`       // UUID - groups versions of the same logical entity
	Version         int            `json:"version"`          // Incrementing version number (starts at 1)
	StructuralType  StructuralType `json:"structural_type"`  // Role in the request/result exchange
	Type            string         `json:"type"`             // Domain type (e.g., "PlanRequest", "PlanResult")
	Payload         string         `json:"payload"`          // JSON request or result body
	SourceArtefacts []string       `json:"source_artefacts"` // Array of artefact UUIDs this was derived from
	ProducedByRole  string         `json:"produced_by_role"` // Role of the producer ("planrun" for requests)
	CreatedAtMs     int64          `json:"created_at_ms"`    // Unix timestamp in milliseconds when artefact was created
}

// StructuralType defines the role an artefact plays in the exchange.
type StructuralType string

const (
	// StructuralTypeStandard represents requests and successful results
	StructuralTypeStandard StructuralType = "Standard"

	// StructuralTypeReview represents results produced by review agents
	StructuralTypeReview StructuralType = "Review"

	// StructuralTypeFailure represents an agent failure answering a request
	StructuralTypeFailure StructuralType = "Failure"

	// StructuralTypeTerminal represents workflow completion
	StructuralTypeTerminal StructuralType = "Terminal"
)

// NewArtefact builds a version-1 Standard artefact with fresh IDs.
func NewArtefact(artefactType, payload, producedBy string, sources ...string) *Artefact {
	if sources == nil {
		sources = []string{}
	}
	return &Artefact{
		ID:              uuid.New().String(),
		LogicalID:       uuid.New().String(),
		Version:         1,
		StructuralType:  StructuralTypeStandard,
		Type:            artefactType,
		Payload:         payload,
		SourceArtefacts: sources,
		ProducedByRole:  producedBy,
		CreatedAtMs:     time.Now().UnixMilli(),
	}
}

// DerivedFrom reports whether sourceID is listed in the artefact's provenance.
func (a *Artefact) DerivedFrom(sourceID string) bool {
	for _, id := range a.SourceArtefacts {
		if id == sourceID {
			return true
		}
	}
	return false
}

// Validate checks if the Artefact has valid field values.
// Returns an error if any validation fails.
func (a *Artefact) Validate() error {
	if !isValidUUID(a.ID) {
		return fmt.Errorf("invalid artefact ID: not a valid UUID")
	}

	if !isValidUUID(a.LogicalID) {
		return fmt.Errorf("invalid logical ID: not a valid UUID")
	}

	if a.Version < 1 {
		return fmt.Errorf("invalid version: must be >= 1, got %d", a.Version)
	}

	if err := a.StructuralType.Validate(); err != nil {
		return fmt.Errorf("invalid structural type: %w", err)
	}

	if a.Type == "" {
		return fmt.Errorf("artefact type cannot be empty")
	}

	if a.ProducedByRole == "" {
		return fmt.Errorf("produced_by_role cannot be empty")
	}

	for i, sourceID := range a.SourceArtefacts {
		if !isValidUUID(sourceID) {
			return fmt.Errorf("invalid source artefact at index %d: not a valid UUID", i)
		}
	}

	return nil
}

// Validate checks if the StructuralType is a valid enum value.
func (st StructuralType) Validate() error {
	switch st {
	case StructuralTypeStandard, StructuralTypeReview, StructuralTypeFailure, StructuralTypeTerminal:
		return nil
	default:
		return fmt.Errorf("unknown structural type: %q", st)
	}
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
