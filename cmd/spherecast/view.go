package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/spherecast/pkg/math3d"
	"github.com/taigrr/spherecast/pkg/render"
	"github.com/taigrr/spherecast/pkg/trace"
)

// orbitAxis tracks position and velocity for one orbit angle with spring decay.
type orbitAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// newOrbitAxis creates an axis with a harmonica spring for smooth velocity decay.
func newOrbitAxis(fps int) orbitAxis {
	return orbitAxis{
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// update applies velocity to position and decays velocity toward 0 using the spring.
func (a *orbitAxis) update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// orbitState keeps the camera on a sphere around the scene origin.
type orbitState struct {
	Yaw, Pitch orbitAxis
	Dist       float64
	fps        int
}

func newOrbitState(fps int) *orbitState {
	return &orbitState{
		Yaw:   newOrbitAxis(fps),
		Pitch: newOrbitAxis(fps),
		Dist:  2,
		fps:   fps,
	}
}

func (o *orbitState) update() {
	o.Yaw.update()
	o.Pitch.update()

	// Clamp pitch short of the poles so the up hint never degenerates.
	const maxPitch = math.Pi/2 - 0.05
	if o.Pitch.Position > maxPitch {
		o.Pitch.Position = maxPitch
	}
	if o.Pitch.Position < -maxPitch {
		o.Pitch.Position = -maxPitch
	}
}

func (o *orbitState) applyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

func (o *orbitState) reset() {
	o.Yaw = newOrbitAxis(o.fps)
	o.Pitch = newOrbitAxis(o.fps)
	o.Dist = 2
}

// eye returns the camera position on the orbit sphere. Yaw 0, pitch 0 puts
// the eye on +Z looking at the origin, matching the default scene.
func (o *orbitState) eye() math3d.Vec3 {
	cp := math.Cos(o.Pitch.Position)
	return math3d.V3(
		cp*math.Sin(o.Yaw.Position),
		math.Sin(o.Pitch.Position),
		cp*math.Cos(o.Yaw.Position),
	).Scale(o.Dist)
}

// viewState holds the interactive parameters the user edits between frames
// (UI state, not library code).
type viewState struct {
	Fovy         float64     // vertical field of view in degrees
	LightMode    bool        // whether in light positioning mode
	TargetLight  int         // which light L repositions
	PendingLight math3d.Vec3 // light direction while positioning
	CommitLight  bool        // click happened, apply PendingLight this frame
	Snapshot     bool        // save a PNG on the next frame
	ShowHUD      bool
}

func newViewState() *viewState {
	return &viewState{Fovy: 60, ShowHUD: true}
}

// screenToLightDir converts a screen position to a light direction on the
// hemisphere above the scene.
func (v *viewState) screenToLightDir(screenX, screenY, width, height int) math3d.Vec3 {
	// Normalize to [-1, 1]
	nx := (float64(screenX)/float64(width))*2 - 1
	ny := (float64(screenY)/float64(height))*2 - 1

	// Clamp to unit circle
	lenSq := nx*nx + ny*ny
	if lenSq > 1 {
		l := math.Sqrt(lenSq)
		nx /= l
		ny /= l
		lenSq = 1
	}

	// Z component (hemisphere projection)
	nz := math.Sqrt(1 - lenSq)

	return math3d.V3(nx, -ny, nz).Normalize()
}

// hud renders an overlay with scene info and controls.
type hud struct {
	sceneName string
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

func newHUD(sceneName string) *hud {
	return &hud{
		sceneName: sceneName,
		fpsTime:   time.Now(),
	}
}

// updateFPS updates the FPS counter (call once per frame).
func (h *hud) updateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// render draws the HUD overlay directly to the terminal.
func (h *hud) render(width, height int, scene *trace.Scene, view *viewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	// Light mode always shows its indicator
	if view.LightMode {
		lightMsg := fmt.Sprintf("%s%s%s ◉ LIGHT %d - Move mouse to position, click to set, Esc to cancel %s",
			bgBlack, bold, fgYellow, view.TargetLight+1, reset)
		lightCol := max((width-62)/2, 1)
		fmt.Print(moveTo(height, lightCol) + lightMsg)
		return
	}

	if !view.ShowHUD {
		return
	}

	// Top left: FPS
	fmt.Printf("%s%s%s %.0f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	// Top middle: scene name
	titleCol := max((width-len(h.sceneName)-2)/2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, titleCol), bold, bgBlack, fgWhite, h.sceneName, reset)

	// Top right: primitive counts
	counts := fmt.Sprintf("%d spheres · %d lights", len(scene.Spheres), len(scene.Lights))
	countCol := max(width-len(counts)-2, 1)
	fmt.Printf("%s%s%s%s %s %s", moveTo(1, countCol), bgBlack, fgCyan, bold, counts, reset)

	// Bottom left: camera parameters
	fmt.Printf("%s%s%s fovy %.0f°  light %d/%d %s",
		moveTo(height, 1), bgBlack, fgWhite, view.Fovy, view.TargetLight+1, len(scene.Lights), reset)

	// Bottom right: light hint
	hint := fmt.Sprintf("%s%s%s L: position light %s", bgBlack, dim, fgYellow, reset)
	hintCol := max(width-19, 1)
	fmt.Print(moveTo(height, hintCol) + hint)
}

func runViewer(scene *trace.Scene, sceneName string, fps, workers int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	termRenderer := render.NewTerminalRenderer(term, width, height)
	fbWidth, fbHeight := termRenderer.FramebufferSize()
	fb := render.NewFramebuffer(fbWidth, fbHeight)

	renderer := trace.NewRenderer()
	renderer.SetWorkers(workers)

	orbit := newOrbitState(fps)
	view := newViewState()
	overlay := newHUD(sceneName)

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Input state
	inputTorque := struct{ pitch, yaw float64 }{}
	const torqueStrength = 3.0

	// Mouse state
	var mouseDown bool
	var lastMouseX, lastMouseY int

	// Event handler
	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				termRenderer = render.NewTerminalRenderer(term, width, height)
				fbWidth, fbHeight = termRenderer.FramebufferSize()
				fb = render.NewFramebuffer(fbWidth, fbHeight)

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape"):
					if view.LightMode {
						view.LightMode = false
					} else {
						cancel()
						return
					}
				case ev.MatchString("ctrl+c"):
					cancel()
					return
				case ev.MatchString("r"):
					orbit.reset()
					view.Fovy = 60
				case ev.MatchString("w", "up"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("q"):
					view.Fovy = math.Max(10, view.Fovy-2)
				case ev.MatchString("e"):
					view.Fovy = math.Min(170, view.Fovy+2)
				case ev.MatchString("+", "="):
					orbit.Dist = math.Max(1.2, orbit.Dist-0.25)
				case ev.MatchString("-", "_"):
					orbit.Dist = math.Min(20, orbit.Dist+0.25)
				case ev.MatchString("tab"):
					view.TargetLight = (view.TargetLight + 1) % len(scene.Lights)
				case ev.MatchString("l"):
					view.LightMode = true
					view.PendingLight = scene.Lights[view.TargetLight].Position.Vec3().Normalize()
				case ev.MatchString("p"):
					view.Snapshot = true
				case ev.MatchString("?"), ev.MatchString("shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w"), ev.MatchString("up"), ev.MatchString("s"), ev.MatchString("down"):
					inputTorque.pitch = 0
				case ev.MatchString("a"), ev.MatchString("left"), ev.MatchString("d"), ev.MatchString("right"):
					inputTorque.yaw = 0
				}

			case uv.MouseClickEvent:
				if view.LightMode {
					view.CommitLight = true
					view.LightMode = false
				} else {
					mouseDown = true
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseReleaseEvent:
				if !view.LightMode {
					mouseDown = false
				}

			case uv.MouseMotionEvent:
				if view.LightMode {
					view.PendingLight = view.screenToLightDir(ev.X, ev.Y, width, height)
				} else if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.applyImpulse(float64(dy)*-0.03, float64(dx)*0.03)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbit.Dist = math.Max(1.2, orbit.Dist-0.25)
				case uv.MouseWheelDown:
					orbit.Dist = math.Min(20, orbit.Dist+0.25)
				}
			}
		}
	}()

	// Main loop
	targetDuration := time.Second / time.Duration(fps)
	lastFrame := time.Now()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()
		dt := now.Sub(lastFrame).Seconds()
		lastFrame = now

		if dt > 0.1 {
			dt = 0.1
		}

		// Apply input torque and decay it (key release events unreliable)
		orbit.applyImpulse(inputTorque.pitch*dt, inputTorque.yaw*dt)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9

		// Update springs (harmonica handles timing internally)
		orbit.update()

		// Apply interactive edits to the scene, then freeze it for this
		// frame's render.
		scene.Camera = trace.NewCamera(orbit.eye(), math3d.Zero3(), math3d.Up(), view.Fovy)
		applyLightEdits(scene, view)

		// Pin this frame's buffers; a resize event swaps them between frames.
		frame := fb
		out := termRenderer

		img := renderer.Render(scene, frame.Width, frame.Height)
		frame.Blit(img)

		if view.Snapshot {
			view.Snapshot = false
			name := fmt.Sprintf("spherecast_%s.png", time.Now().Format("20060102_150405"))
			if err := frame.SavePNG(name); err != nil {
				cleanup()
				return fmt.Errorf("save snapshot: %w", err)
			}
		}

		out.Render(frame)
		if err := out.Flush(); err != nil {
			cleanup()
			return fmt.Errorf("flush: %w", err)
		}

		// HUD overlay (always update FPS, render clears lines when HUD off)
		overlay.updateFPS()
		overlay.render(width, height, scene, view)

		// Frame timing
		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// applyLightEdits moves the target light along the pending direction while
// positioning, preserving its distance from the origin, and commits it on
// click.
func applyLightEdits(scene *trace.Scene, view *viewState) {
	if !view.LightMode && !view.CommitLight {
		return
	}

	light := &scene.Lights[view.TargetLight]
	dist := light.Position.Vec3().Len()
	if dist < 1 {
		dist = 1
	}

	pos := view.PendingLight.Scale(dist)
	light.Position = math3d.V4FromV3(pos, 1)
	view.CommitLight = false
}
