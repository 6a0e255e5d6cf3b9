package blackboard

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Artefacts are stored as Redis hashes. The source_artefacts array is
// JSON-encoded into a single hash field.

// ArtefactToHash converts an Artefact struct to a Redis hash format.
func ArtefactToHash(a *Artefact) (map[string]interface{}, error) {
	sourceArtefactsJSON, err := json.Marshal(a.SourceArtefacts)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal source artefacts: %w", err)
	}

	hash := map[string]interface{}{
		"id":               a.ID,
		"logical_id":       a.LogicalID,
		"version":          a.Version,
		"structural_type":  string(a.StructuralType),
		"type":             a.Type,
		"payload":          a.Payload,
		"source_artefacts": string(sourceArtefactsJSON),
		"produced_by_role": a.ProducedByRole,
		"created_at_ms":    a.CreatedAtMs,
	}

	return hash, nil
}

// HashToArtefact converts a Redis hash to an Artefact struct.
func HashToArtefact(hash map[string]string) (*Artefact, error) {
	version, err := strconv.Atoi(hash["version"])
	if err != nil {
		return nil, fmt.Errorf("invalid version field: %w", err)
	}

	var sourceArtefacts []string
	if sourceArtefactsJSON := hash["source_artefacts"]; sourceArtefactsJSON != "" {
		if err := json.Unmarshal([]byte(sourceArtefactsJSON), &sourceArtefacts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal source_artefacts: %w", err)
		}
	}

	// Empty slice instead of nil so JSON output stays "[]"
	if sourceArtefacts == nil {
		sourceArtefacts = []string{}
	}

	createdAtMs, _ := strconv.ParseInt(hash["created_at_ms"], 10, 64)

	return &Artefact{
		ID:              hash["id"],
		LogicalID:       hash["logical_id"],
		Version:         version,
		StructuralType:  StructuralType(hash["structural_type"]),
		Type:            hash["type"],
		Payload:         hash["payload"],
		SourceArtefacts: sourceArtefacts,
		ProducedByRole:  hash["produced_by_role"],
		CreatedAtMs:     createdAtMs,
	}, nil
}
