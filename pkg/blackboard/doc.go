// Package blackboard is the planrun view of a Holt blackboard: the Redis-backed
// shared workspace through which planrun talks to the external planning and
// review agents.
//
// # Overview
//
// planrun never computes a plan itself. Each collaborator call is posted to the
// blackboard as a request artefact, and the agent serving that request answers
// with a result artefact whose source_artefacts names the request. This package
// only knows about artefacts and artefact events; the request/result protocol
// lives in internal/collab.
//
// # Redis Schema
//
// Keys and channels share the Holt namespace so that planrun can join a running
// Holt instance:
//
//	Artefacts:       holt:{instance_name}:artefact:{artefact_id}
//	Artefact events: holt:{instance_name}:artefact_events
//
// # Usage Example
//
//	client, err := blackboard.NewClient(opts, "default-1")
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	sub, err := client.SubscribeArtefactEvents(ctx)
//	if err != nil {
//		return err
//	}
//	defer sub.Close()
//
//	req := blackboard.NewArtefact("PlanRequest", payload, "planrun")
//	if err := client.CreateArtefact(ctx, req); err != nil {
//		return err
//	}
//
// Pub/Sub delivery is at-most-once, so subscribers must be in place before the
// artefact they wait on can be answered.
package blackboard
