// Package game runs the sandbox frame loop: it drains input, advances the
// locomotion controller, and then lets the follow camera react to the
// character's new position.
package game

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-motion/internal/config"
	"github.com/Faultbox/midgard-motion/internal/engine/camera"
	"github.com/Faultbox/midgard-motion/internal/engine/character"
	"github.com/Faultbox/midgard-motion/internal/engine/input"
	"github.com/Faultbox/midgard-motion/internal/engine/physics"
	"github.com/Faultbox/midgard-motion/internal/logger"
	"github.com/Faultbox/midgard-motion/pkg/math"
)

// Options supplies the host-facing collaborators.
type Options struct {
	// Source feeds input. Nil replays the configured script.
	Source input.Source
	// Cursor is captured when the camera initializes. May be nil.
	Cursor camera.CursorCapturer
	// Paced sleeps between fixed steps so frames run in real time.
	Paced bool
}

// FrameResult describes one simulated frame.
type FrameResult struct {
	Index          int
	Dt             float32
	Character      character.State
	Position       math.Vec3
	Heading        math.Quat
	Camera         camera.Placement
	FollowDistance float32 // smoothed camera to character
	InTrigger      bool
	Quit           bool
}

// Game is the sandbox instance.
type Game struct {
	cfg  *config.Config
	opts Options
	log  *zap.Logger

	world  *physics.World
	body   *physics.Body
	loco   *character.Controller
	rig    *camera.Rig
	source input.Source

	frame     int
	inTrigger bool
	last      FrameResult
}

// New builds the collision world, spawns the character and attaches the camera.
func New(cfg *config.Config, opts Options) (*Game, error) {
	logger.Info("initializing sandbox",
		zap.String("input", cfg.Input.Backend),
		zap.Duration("fixedStep", cfg.Simulation.FixedStep),
		zap.Int("boxes", len(cfg.World.Boxes)),
	)

	world, err := BuildWorld(cfg.World)
	if err != nil {
		return nil, fmt.Errorf("failed to build world: %w", err)
	}

	source := opts.Source
	if source == nil {
		steps, err := ScriptSteps(cfg.Input.Script)
		if err != nil {
			return nil, fmt.Errorf("failed to load input script: %w", err)
		}
		source = input.NewScript(steps)
	}

	spawn := vec3(cfg.World.Spawn)
	body := physics.NewBody(world, spawn, BodyConfig(cfg.Body))

	locoCfg, err := LocomotionConfig(cfg.Locomotion)
	if err != nil {
		return nil, fmt.Errorf("failed to configure locomotion: %w", err)
	}
	loco, err := character.New(locoCfg, body, world)
	if err != nil {
		return nil, fmt.Errorf("failed to create locomotion: %w", err)
	}
	loco.SetHeading(math.QuatEuler(0, cfg.Camera.StartYaw, 0))

	camCfg, err := CameraConfig(cfg.Camera)
	if err != nil {
		return nil, fmt.Errorf("failed to configure camera: %w", err)
	}
	rig, err := camera.NewRig(camCfg, world, opts.Cursor)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera: %w", err)
	}
	rig.SetTarget(body)

	startRot := math.QuatEuler(cfg.Camera.StartPitch, cfg.Camera.StartYaw, 0)
	start := camera.Transform{
		Position: spawn.Add(startRot.Rotate(camCfg.Offset)),
		Rotation: startRot,
	}
	if err := rig.Initialize(start); err != nil {
		return nil, fmt.Errorf("failed to initialize camera: %w", err)
	}

	logger.Info("sandbox initialized",
		zap.Float32("spawnX", spawn.X),
		zap.Float32("spawnY", spawn.Y),
		zap.Float32("spawnZ", spawn.Z),
	)

	return &Game{
		cfg:    cfg,
		opts:   opts,
		log:    logger.Named("game"),
		world:  world,
		body:   body,
		loco:   loco,
		rig:    rig,
		source: source,
	}, nil
}

// Frame advances the simulation by dt seconds. Input is applied first, then
// locomotion, then the camera, so the camera always follows the position
// produced in the same frame.
func (g *Game) Frame(dt float32) FrameResult {
	snap := g.source.Poll()

	g.loco.ApplyInput(snap)

	planar := g.rig.PlanarRotation()
	g.loco.Tick(dt, planar.Forward(), planar.Right())

	placement := g.rig.Update(snap.Look, snap.Scroll, dt)

	g.updateTrigger()

	pos := g.loco.Position()
	g.last = FrameResult{
		Index:          g.frame,
		Dt:             dt,
		Character:      g.loco.State(),
		Position:       pos,
		Heading:        g.loco.Heading(),
		Camera:         placement,
		FollowDistance: placement.Position.Distance(pos),
		InTrigger:      g.inTrigger,
		Quit:           snap.Quit,
	}
	g.frame++
	return g.last
}

// updateTrigger logs when the character enters or leaves a trigger volume.
func (g *Game) updateTrigger() {
	center := g.body.Position().Add(g.body.Center())
	inside := g.world.OverlapSphere(center, g.body.Radius(), physics.LayerTrigger, physics.QueryTriggerCollide)
	if inside == g.inTrigger {
		return
	}
	g.inTrigger = inside
	if inside {
		g.log.Info("entered trigger volume", zap.Int("frame", g.frame))
	} else {
		g.log.Info("left trigger volume", zap.Int("frame", g.frame))
	}
}

// Run drives frames until quit, the frame limit, or ctx is done.
func (g *Game) Run(ctx context.Context) error {
	step := g.cfg.Simulation.FixedStep
	maxFrames := g.cfg.Simulation.MaxFrames
	statsInterval := g.cfg.Simulation.StatsInterval

	var ticker *time.Ticker
	if step > 0 && g.opts.Paced {
		ticker = time.NewTicker(step)
		defer ticker.Stop()
	}

	g.log.Info("starting frame loop",
		zap.Duration("step", step),
		zap.Int("maxFrames", maxFrames),
		zap.Bool("paced", ticker != nil),
	)

	lastTime := time.Now()
	var simTime, statsTimer time.Duration

	for maxFrames <= 0 || g.frame < maxFrames {
		select {
		case <-ctx.Done():
			g.log.Info("frame loop cancelled", zap.Int("frames", g.frame))
			return ctx.Err()
		default:
		}

		dt := step
		if step <= 0 {
			now := time.Now()
			dt = now.Sub(lastTime)
			lastTime = now
		}

		res := g.Frame(float32(dt.Seconds()))
		if res.Quit {
			g.log.Info("quit requested", zap.Int("frame", res.Index))
			break
		}

		simTime += dt
		statsTimer += dt
		if statsInterval > 0 && statsTimer >= statsInterval {
			g.logStats(res, simTime)
			statsTimer = 0
		}

		if ticker != nil {
			select {
			case <-ctx.Done():
				g.log.Info("frame loop cancelled", zap.Int("frames", g.frame))
				return ctx.Err()
			case <-ticker.C:
			}
		}
	}

	g.log.Info("frame loop finished", zap.Int("frames", g.frame), zap.Duration("simulated", simTime))
	return nil
}

func (g *Game) logStats(res FrameResult, simTime time.Duration) {
	g.log.Info("frame stats",
		zap.Int("frame", res.Index),
		zap.Duration("time", simTime),
		zap.Float32("x", res.Position.X),
		zap.Float32("y", res.Position.Y),
		zap.Float32("z", res.Position.Z),
		zap.Bool("grounded", res.Character.IsGrounded),
		zap.Bool("crouching", res.Character.IsCrouching),
		zap.Bool("sprinting", res.Character.IsSprinting),
		zap.Float32("cameraDistance", res.Camera.Distance),
		zap.Float32("followDistance", res.FollowDistance),
		zap.Bool("cameraBlocked", res.Camera.Blocked),
		zap.Float32("zoom", g.rig.CurrentZoom()),
	)
}

// Frames returns the number of frames simulated.
func (g *Game) Frames() int { return g.frame }

// Last returns the most recent frame result.
func (g *Game) Last() FrameResult { return g.last }

// Controller returns the locomotion controller.
func (g *Game) Controller() *character.Controller { return g.loco }

// Rig returns the camera rig.
func (g *Game) Rig() *camera.Rig { return g.rig }

// Body returns the character body.
func (g *Game) Body() *physics.Body { return g.body }

// Close releases sandbox resources.
func (g *Game) Close() {
	g.log.Info("closing sandbox", zap.Int("frames", g.frame))
}
