// Package testutil provides a fake planning agent that answers planrun
// requests on a miniredis-backed blackboard.
package testutil

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/dyluth/planrun/pkg/blackboard"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// ResponderRole is the produced_by_role of every artefact the fake agent writes.
const ResponderRole = "test-planner"

// Handler answers one request payload. Returning fail=true posts a Failure
// artefact carrying result as its message.
type Handler func(payload string) (result string, fail bool)

// Reply returns a Handler that always answers with v encoded as JSON.
func Reply(v any) Handler {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return func(string) (string, bool) { return string(data), false }
}

// Fail returns a Handler that always answers with a Failure artefact.
func Fail(message string) Handler {
	return func(string) (string, bool) { return message, true }
}

// Responder is a fake agent subscribed to the blackboard.
type Responder struct {
	client   *blackboard.Client
	handlers map[string]Handler

	mu       sync.Mutex
	requests []*blackboard.Artefact
}

// NewMiniRedis starts a miniredis server closed at test cleanup.
func NewMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.NewMiniRedis()
	require.NoError(t, mr.Start())
	t.Cleanup(mr.Close)
	return mr
}

// NewClient returns a blackboard client for mr, closed at test cleanup.
func NewClient(t *testing.T, mr *miniredis.Miniredis, instanceName string) *blackboard.Client {
	t.Helper()
	client, err := blackboard.NewClient(&redis.Options{Addr: mr.Addr()}, instanceName)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// StartResponder subscribes a fake agent that answers requests by artefact
// type (e.g. "PlanRequest"). Requests without a handler are recorded but
// left unanswered. The subscription is live when StartResponder returns.
func StartResponder(t *testing.T, mr *miniredis.Miniredis, instanceName string, handlers map[string]Handler) *Responder {
	t.Helper()
	return StartResponderOn(t, NewClient(t, mr, instanceName), handlers)
}

// StartResponderOn is StartResponder for an existing client, e.g. one
// connected to a real Redis.
func StartResponderOn(t *testing.T, client *blackboard.Client, handlers map[string]Handler) *Responder {
	t.Helper()

	r := &Responder{
		client:   client,
		handlers: handlers,
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := r.client.SubscribeArtefactEvents(ctx)
	require.NoError(t, err)

	done := make(chan struct{})
	t.Cleanup(func() {
		cancel()
		sub.Close()
		<-done
	})

	go func() {
		defer close(done)
		for a := range sub.Events() {
			if a.ProducedByRole == ResponderRole {
				continue
			}
			r.record(a)

			h, ok := r.handlers[a.Type]
			if !ok {
				continue
			}
			result, fail := h(a.Payload)

			reply := blackboard.NewArtefact(strings.TrimSuffix(a.Type, "Request")+"Result", result, ResponderRole, a.ID)
			if fail {
				reply.StructuralType = blackboard.StructuralTypeFailure
			}
			if err := r.client.CreateArtefact(ctx, reply); err != nil {
				return
			}
		}
	}()

	return r
}

func (r *Responder) record(a *blackboard.Artefact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, a)
}

// Requests returns the request artefacts seen so far, in arrival order.
func (r *Responder) Requests() []*blackboard.Artefact {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*blackboard.Artefact, len(r.requests))
	copy(out, r.requests)
	return out
}

// RequestTypes returns the artefact types of Requests, in arrival order.
func (r *Responder) RequestTypes() []string {
	var types []string
	for _, a := range r.Requests() {
		types = append(types, a.Type)
	}
	return types
}
