package descriptor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinecraftSkinStudio_Descriptor(t *testing.T) {
	p := MinecraftSkinStudio()

	assert.Equal(t, "minecraft-skin-studio", p.Descriptor.Name)
	assert.Equal(t, "web_application", p.Descriptor.Type)
	assert.Equal(t, "children_7_12", p.Descriptor.TargetUsers)
	assert.Equal(t, []string{"pixel_editor", "ai_assistance", "3d_preview", "safe_sharing", "educational"}, p.Descriptor.KeyFeatures)
	assert.Len(t, p.Descriptor.Technologies, 5)
	assert.Len(t, p.Descriptor.SpecialRequirements, 4)
}

func TestMinecraftSkinStudio_CallInputs(t *testing.T) {
	p := MinecraftSkinStudio()

	assert.Len(t, p.Planner.Requirements, 7)
	assert.Len(t, p.Planner.Constraints, 5)
	assert.Len(t, p.Planner.AvailableAgents, 11)
	assert.Contains(t, p.Planner.AvailableAgents, "Dr. Paranoid")
	assert.Equal(t, []string{"design", "implementation", "testing", "deployment"}, p.Planner.Phases)
	assert.Equal(t, 90, p.Planner.TimelineDays)

	assert.Len(t, p.Reviewer.Requirements, 8)
	assert.Len(t, p.Reviewer.Constraints, 6)
	assert.NotEqual(t, p.Planner.Requirements, p.Reviewer.Requirements, "reviewer inputs are authored separately")
}

func TestMinecraftSkinStudio_FreshCopies(t *testing.T) {
	a := MinecraftSkinStudio()
	a.Descriptor.KeyFeatures[0] = "mutated"

	b := MinecraftSkinStudio()
	assert.Equal(t, "pixel_editor", b.Descriptor.KeyFeatures[0])
}

func TestProjectDescriptor_JSONKeys(t *testing.T) {
	data, err := json.Marshal(MinecraftSkinStudio().Descriptor)
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(data, &keys))
	for _, key := range []string{"name", "type", "description", "target_users", "key_features", "technologies", "special_requirements"} {
		assert.Contains(t, keys, key)
	}
	assert.Len(t, keys, 7)
}
