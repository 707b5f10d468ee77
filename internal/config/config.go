// Package config handles sandbox configuration loading and management.
package config

import "time"

// Config holds all sandbox settings.
type Config struct {
	Camera     CameraConfig     `yaml:"camera"`
	Locomotion LocomotionConfig `yaml:"locomotion"`
	Body       BodyConfig       `yaml:"body"`
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Input      InputConfig      `yaml:"input"`
	Window     WindowConfig     `yaml:"window"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// Vec3 is a YAML-friendly vector.
type Vec3 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// CameraConfig holds follow camera tuning. Angles are in degrees.
type CameraConfig struct {
	Offset              Vec3     `yaml:"offset"`
	LookSpeed           float32  `yaml:"look_speed"`
	PitchMin            float32  `yaml:"pitch_min"`
	PitchMax            float32  `yaml:"pitch_max"`
	ZoomSpeed           float32  `yaml:"zoom_speed"`
	MinZoom             float32  `yaml:"min_zoom"`
	MaxZoom             float32  `yaml:"max_zoom"`
	CollisionLayers     []string `yaml:"collision_layers"`
	CollisionRadius     float32  `yaml:"collision_radius"`
	CollisionSmoothTime float32  `yaml:"collision_smooth_time"`
	StartPitch          float32  `yaml:"start_pitch"`
	StartYaw            float32  `yaml:"start_yaw"`
}

// LocomotionConfig holds character movement tuning.
type LocomotionConfig struct {
	WalkSpeed             float32  `yaml:"walk_speed"`
	SprintSpeed           float32  `yaml:"sprint_speed"`
	CrouchSpeed           float32  `yaml:"crouch_speed"`
	RotationSpeed         float32  `yaml:"rotation_speed"`
	JumpHeight            float32  `yaml:"jump_height"`
	Gravity               float32  `yaml:"gravity"`
	GroundCheckRadius     float32  `yaml:"ground_check_radius"`
	GroundLayers          []string `yaml:"ground_layers"`
	CrouchHeight          float32  `yaml:"crouch_height"`
	CrouchCenter          Vec3     `yaml:"crouch_center"`
	CrouchTransitionSpeed float32  `yaml:"crouch_transition_speed"`
}

// BodyConfig holds the standing capsule shape.
type BodyConfig struct {
	Height float32 `yaml:"height"`
	Radius float32 `yaml:"radius"`
	Center Vec3    `yaml:"center"`
}

// BoxConfig is a static collider.
type BoxConfig struct {
	Min     Vec3   `yaml:"min"`
	Max     Vec3   `yaml:"max"`
	Layer   string `yaml:"layer"`
	Trigger bool   `yaml:"trigger"`
}

// WorldConfig describes the collision world.
type WorldConfig struct {
	Spawn Vec3        `yaml:"spawn"`
	Boxes []BoxConfig `yaml:"boxes"`
}

// SimulationConfig controls the frame loop.
type SimulationConfig struct {
	FixedStep     time.Duration `yaml:"fixed_step"` // 0 uses wall-clock deltas
	MaxFrames     int           `yaml:"max_frames"` // 0 runs until quit
	StatsInterval time.Duration `yaml:"stats_interval"`
}

// ScriptStep is one scripted input event.
type ScriptStep struct {
	Frame  int     `yaml:"frame"`
	Event  string  `yaml:"event"` // move, move_cancel, look, scroll, jump, crouch, sprint_down, sprint_up, quit
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Amount float32 `yaml:"amount"`
}

// KeyBindings maps actions to SDL key names.
type KeyBindings struct {
	Forward string `yaml:"forward"`
	Back    string `yaml:"back"`
	Left    string `yaml:"left"`
	Right   string `yaml:"right"`
	Jump    string `yaml:"jump"`
	Crouch  string `yaml:"crouch"`
	Sprint  string `yaml:"sprint"`
	Quit    string `yaml:"quit"`
}

// InputConfig selects and configures the input source.
type InputConfig struct {
	Backend  string       `yaml:"backend"` // "script" or "sdl"
	LookGain float32      `yaml:"look_gain"`
	Bindings KeyBindings  `yaml:"bindings"`
	Script   []ScriptStep `yaml:"script"`
}

// WindowConfig holds the SDL window used for interactive input.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	Console bool   `yaml:"console"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Offset:              Vec3{X: 0, Y: 2, Z: -4},
			LookSpeed:           120,
			PitchMin:            -40,
			PitchMax:            80,
			ZoomSpeed:           2,
			MinZoom:             2,
			MaxZoom:             6,
			CollisionLayers:     []string{"ground", "wall"},
			CollisionRadius:     0.2,
			CollisionSmoothTime: 0.05,
			StartPitch:          15,
		},
		Locomotion: LocomotionConfig{
			WalkSpeed:             5,
			SprintSpeed:           8,
			CrouchSpeed:           3,
			RotationSpeed:         10,
			JumpHeight:            1.5,
			Gravity:               -20,
			GroundCheckRadius:     0.25,
			GroundLayers:          []string{"ground"},
			CrouchHeight:          1.0,
			CrouchCenter:          Vec3{Y: 0.5},
			CrouchTransitionSpeed: 8,
		},
		Body: BodyConfig{
			Height: 2,
			Radius: 0.5,
			Center: Vec3{Y: 1},
		},
		World: WorldConfig{
			Spawn: Vec3{Y: 1},
			Boxes: []BoxConfig{
				{Min: Vec3{X: -50, Y: -1, Z: -50}, Max: Vec3{X: 50, Y: 0, Z: 50}, Layer: "ground"},
				{Min: Vec3{X: -10, Y: 0, Z: 20}, Max: Vec3{X: 10, Y: 4, Z: 21}, Layer: "wall"},
				{Min: Vec3{X: -10, Y: 0, Z: -6}, Max: Vec3{X: 10, Y: 4, Z: -5}, Layer: "wall"},
				{Min: Vec3{X: 3, Y: 0, Z: 8}, Max: Vec3{X: 5, Y: 2, Z: 10}, Layer: "trigger", Trigger: true},
			},
		},
		Simulation: SimulationConfig{
			FixedStep:     time.Second / 60,
			MaxFrames:     0,
			StatsInterval: time.Second,
		},
		Input: InputConfig{
			Backend:  "script",
			LookGain: 0.05,
			Bindings: KeyBindings{
				Forward: "W",
				Back:    "S",
				Left:    "A",
				Right:   "D",
				Jump:    "Space",
				Crouch:  "C",
				Sprint:  "Left Shift",
				Quit:    "Escape",
			},
			Script: DefaultScript(),
		},
		Window: WindowConfig{
			Title:  "Midgard Motion Sandbox",
			Width:  1280,
			Height: 720,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
			Console: true,
		},
	}
}

// DefaultScript walks forward, sprints, jumps, crouches and orbits the camera.
func DefaultScript() []ScriptStep {
	return []ScriptStep{
		{Frame: 0, Event: "move", Y: 1},
		{Frame: 60, Event: "sprint_down"},
		{Frame: 90, Event: "jump"},
		{Frame: 150, Event: "sprint_up"},
		{Frame: 160, Event: "crouch"},
		{Frame: 200, Event: "look", X: 30},
		{Frame: 220, Event: "jump"},
		{Frame: 240, Event: "scroll", Amount: -60},
		{Frame: 300, Event: "move_cancel"},
		{Frame: 360, Event: "quit"},
	}
}
