package blackboard

import "fmt"

// Redis key pattern helpers
//
// Key pattern: holt:{instance_name}:{entity}:{uuid}
// Channel pattern: holt:{instance_name}:{event_type}_events

// ArtefactKey returns the Redis key for an artefact.
// Pattern: holt:{instance_name}:artefact:{artefact_id}
func ArtefactKey(instanceName, artefactID string) string {
	return fmt.Sprintf("holt:%s:artefact:%s", instanceName, artefactID)
}

// ArtefactEventsChannel returns the Pub/Sub channel name for artefact events.
// Pattern: holt:{instance_name}:artefact_events
func ArtefactEventsChannel(instanceName string) string {
	return fmt.Sprintf("holt:%s:artefact_events", instanceName)
}
