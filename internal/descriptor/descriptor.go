// Package descriptor holds the static description of the project being planned
// and the literal inputs handed to each collaborator call.
package descriptor

// ProjectDescriptor describes the project being planned. It is created once
// per run and never mutated.
type ProjectDescriptor struct {
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Description         string   `json:"description"`
	TargetUsers         string   `json:"target_users"`
	KeyFeatures         []string `json:"key_features"`
	Technologies        []string `json:"technologies"`
	SpecialRequirements []string `json:"special_requirements"`
}

// PlannerInputs are the literal arguments for the four Planner calls.
type PlannerInputs struct {
	Requirements    []string
	Constraints     []string
	AvailableAgents []string
	Phases          []string
	TimelineDays    int
	TestTypes       []string
	SpecialFocus    []string
}

// ReviewerInputs are the literal arguments for the Reviewer call. They overlap
// with PlannerInputs but are authored separately; see DESIGN.md.
type ReviewerInputs struct {
	Requirements []string
	Constraints  []string
}

// Project bundles everything a planning run sends to the collaborators.
type Project struct {
	Descriptor ProjectDescriptor
	Planner    PlannerInputs
	Reviewer   ReviewerInputs
}

// MinecraftSkinStudio returns a fresh copy of the Minecraft Skin Studio project.
func MinecraftSkinStudio() Project {
	return Project{
		Descriptor: ProjectDescriptor{
			Name:        "minecraft-skin-studio",
			Type:        "web_application",
			Description: "AI-powered Minecraft skin creator for kids",
			TargetUsers: "children_7_12",
			KeyFeatures: []string{
				"pixel_editor",
				"ai_assistance",
				"3d_preview",
				"safe_sharing",
				"educational",
			},
			Technologies: []string{
				"react",
				"claude_api",
				"threejs",
				"canvas_api",
				"pwa",
			},
			SpecialRequirements: []string{
				"coppa_compliance",
				"child_safety",
				"offline_capable",
				"tablet_optimized",
			},
		},
		Planner: PlannerInputs{
			Requirements: []string{
				"Create kid-friendly Minecraft skin editor",
				"Integrate Claude AI for creative assistance",
				"Implement 3D preview system",
				"Ensure COPPA compliance",
				"Build offline-capable PWA",
				"Create comprehensive test suite",
				"Design parent control system",
			},
			Constraints: []string{
				"Must be usable by 7-year-olds",
				"No personal data collection",
				"Response time < 100ms for drawing",
				"Works on tablets and Chromebooks",
				"AI responses must be age-appropriate",
			},
			AvailableAgents: []string{
				"Cipher",       // Security
				"PixelPusher",  // Game/Graphics
				"Blueprint",    // Architecture
				"Lint",         // Code Quality
				"ASCII_Art",    // UI Design
				"Tensor",       // AI/ML
				"Portability",  // Cross-platform
				"Guardian",     // Web Security
				"FunOptimizer", // User Experience
				"Dr. Paranoid", // Security Review
				"Conductor",    // Change Management
			},
			Phases:       []string{"design", "implementation", "testing", "deployment"},
			TimelineDays: 90,
			TestTypes:    []string{"unit", "integration", "usability", "security", "accessibility"},
			SpecialFocus: []string{"child_usability", "ai_safety", "parent_controls"},
		},
		Reviewer: ReviewerInputs{
			Requirements: []string{
				"Kid-friendly pixel editor with intuitive controls",
				"Claude AI integration with safety filters",
				"Real-time 3D skin preview",
				"Secure local storage with optional cloud sync",
				"Parent dashboard for monitoring and controls",
				"Export to Minecraft-compatible format",
				"50+ starter templates",
				"Offline mode for core features",
			},
			Constraints: []string{
				"COPPA compliant - no data collection from children",
				"All AI responses filtered for age-appropriateness",
				"Maximum 3 clicks to any feature",
				"Support for colorblind users",
				"Works on 2GB RAM devices",
				"No account required for basic features",
			},
		},
	}
}
