package instance

import (
	"testing"

	"github.com/docker/docker/api/types"
	"github.com/stretchr/testify/assert"
)

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name   string
		states []string
		want   Status
	}{
		{name: "empty", states: nil, want: StatusStopped},
		{name: "all running", states: []string{"running", "running"}, want: StatusRunning},
		{name: "all stopped", states: []string{"exited", "exited"}, want: StatusStopped},
		{name: "mixed", states: []string{"running", "exited", "running"}, want: StatusDegraded},
		{name: "single running", states: []string{"running"}, want: StatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var containers []types.Container
			for _, s := range tt.states {
				containers = append(containers, types.Container{State: s})
			}
			assert.Equal(t, tt.want, DetermineStatus(containers))
		})
	}
}
