// Package engine ties the viewer together: it owns the window, the WebGPU
// render context and the universe renderer, and runs the simulation and
// render loops.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/JohnVV/cosmographia/engine/profiler"
	"github.com/JohnVV/cosmographia/engine/renderer"
	"github.com/JohnVV/cosmographia/engine/universe"
	"github.com/JohnVV/cosmographia/engine/window"
)

// Engine is the main entry point for the viewer. It advances simulation time
// on a fixed tick and renders the universe from the observer's viewpoint
// every frame.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Universe returns the universe being viewed.
	//
	// Returns:
	//   - universe.Universe: the universe
	Universe() universe.Universe

	// Observer returns the viewpoint the render loop draws from.
	//
	// Returns:
	//   - universe.Observer: the observer
	Observer() universe.Observer

	// Renderer returns the universe renderer.
	//
	// Returns:
	//   - renderer.UniverseRenderer: the renderer
	Renderer() renderer.UniverseRenderer

	// Context returns the WebGPU render context.
	//
	// Returns:
	//   - renderer.WGPURenderContext: the render context
	Context() renderer.WGPURenderContext

	// SetTickRate sets the simulation tick rate in ticks per second. Takes
	// effect immediately when the engine is running.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps float64)

	// SetTickCallback registers the function called each simulation tick,
	// after simulation time has been advanced.
	//
	// Parameters:
	//   - callback: function receiving the simulation time and the wall
	//     clock delta in seconds
	SetTickCallback(callback func(t, deltaTime float64))

	// SetTimeMultiplier sets how fast simulation time advances relative to
	// wall clock time. Zero pauses the simulation.
	//
	// Parameters:
	//   - multiplier: simulation seconds per wall clock second
	SetTimeMultiplier(multiplier float64)

	// SetFieldOfView sets the vertical field of view of the observer view.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFieldOfView(fov float64)

	// SetRenderFrameLimit sets an optional render frame rate cap in frames
	// per second. Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// EnableProfiler enables frame statistics output to the log.
	EnableProfiler()

	// DisableProfiler disables frame statistics output.
	DisableProfiler()

	// Run starts the simulation and render loops and blocks until the
	// window closes.
	Run()

	// Quit signals all engine goroutines to stop. Safe to call multiple
	// times.
	Quit()
}

type viewerEngine struct {
	window   window.Window
	universe universe.Universe
	observer universe.Observer
	renderer renderer.UniverseRenderer
	rc       renderer.WGPURenderContext

	contextOptions []renderer.WGPURenderContextBuilderOption

	mu             sync.Mutex
	simulationTime float64
	timeMultiplier float64
	fieldOfView    float64

	tickRateChannel chan time.Duration
	engineTickRate  time.Duration
	tickCallback    func(t, deltaTime float64)

	renderFrameLimit time.Duration

	profiler         *profiler.Profiler
	profilingEnabled bool

	running     bool
	wg          sync.WaitGroup
	quitChannel chan struct{}
	quitOnce    sync.Once
}

var _ Engine = &viewerEngine{}

// NewEngine creates an engine with the provided options, creating a default
// window, universe and observer for any not supplied. The render context is
// created on the window's surface and attached to the renderer.
//
// Parameters:
//   - options: functional options for engine configuration
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &viewerEngine{
		tickRateChannel: make(chan time.Duration, 1),
		quitChannel:     make(chan struct{}),
		engineTickRate:  time.Second / 60,
		timeMultiplier:  1,
		fieldOfView:     0.7853981633974483, // 45 degrees
		profiler:        profiler.NewProfiler(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		e.window = window.NewWindow()
	}
	if e.universe == nil {
		e.universe = universe.NewUniverse()
	}
	if e.observer == nil {
		e.observer = universe.NewObserver(universe.NewEntity("origin"))
	}
	if e.renderer == nil {
		e.renderer = renderer.NewUniverseRenderer()
	}

	e.rc = renderer.NewWGPURenderContext(e.window.SurfaceDescriptor(), e.contextOptions...)
	e.rc.ConfigureSurface(e.window.Width(), e.window.Height())
	e.renderer.InitializeGraphics(e.rc)

	e.window.SetResizeCallback(func(width, height int) {
		if width > 0 && height > 0 {
			e.rc.ConfigureSurface(width, height)
		}
	})

	return e
}

func (e *viewerEngine) Window() window.Window {
	return e.window
}

func (e *viewerEngine) Universe() universe.Universe {
	return e.universe
}

func (e *viewerEngine) Observer() universe.Observer {
	return e.observer
}

func (e *viewerEngine) Renderer() renderer.UniverseRenderer {
	return e.renderer
}

func (e *viewerEngine) Context() renderer.WGPURenderContext {
	return e.rc
}

func (e *viewerEngine) Run() {
	e.running = true
	e.wg.Add(2)
	go e.handleTicks()
	go e.handleRender()

	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	e.rc.Release()
}

func (e *viewerEngine) Quit() {
	e.signalQuit()
}

func (e *viewerEngine) signalQuit() {
	e.quitOnce.Do(func() {
		e.running = false
		close(e.quitChannel)
	})
}

// handleTicks runs the fixed-rate simulation loop in its own goroutine,
// advancing simulation time and firing the tick callback. Listens for
// dynamic rate changes via tickRateChannel.
func (e *viewerEngine) handleTicks() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.engineTickRate)
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := now.Sub(lastTick).Seconds()
			lastTick = now

			e.mu.Lock()
			e.simulationTime += dt * e.timeMultiplier
			t := e.simulationTime
			e.mu.Unlock()

			if e.tickCallback != nil {
				e.tickCallback(t, dt)
			}
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.engineTickRate = newRate
		}
	}
}

// handleRender runs the render loop in its own goroutine. Each frame is one
// view set drawn from the observer's viewpoint. Recovers from panics so a
// render fault closes the viewer instead of crashing the process.
func (e *viewerEngine) handleRender() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("render loop recovered from panic", "panic", r)
			e.signalQuit()
		}
	}()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
			frameStart := time.Now()

			if err := e.rc.BeginFrame(); err != nil {
				// Surface acquisition fails transiently during resizes.
				time.Sleep(time.Millisecond)
				continue
			}

			e.mu.Lock()
			t := e.simulationTime
			fov := e.fieldOfView
			e.mu.Unlock()

			if status := e.renderer.BeginViewSet(e.universe, t); status == renderer.RenderOk {
				e.renderer.RenderObserverView(e.observer, fov, e.window.Width(), e.window.Height())
				e.renderer.EndViewSet()
			}

			e.rc.EndFrame()
			e.rc.Present()

			if e.profilingEnabled && e.profiler != nil {
				e.profiler.Tick()
			}

			if e.renderFrameLimit > 0 {
				if remaining := e.renderFrameLimit - time.Since(frameStart); remaining > 0 {
					time.Sleep(remaining)
				}
			}
		}
	}
}

func (e *viewerEngine) SetTickRate(tps float64) {
	if tps <= 0 {
		tps = 60
	}
	newRate := time.Duration(float64(time.Second) / tps)

	if e.running {
		// Non-blocking send; replace any pending update.
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
	} else {
		e.engineTickRate = newRate
	}
}

func (e *viewerEngine) SetTickCallback(callback func(t, deltaTime float64)) {
	e.tickCallback = callback
}

func (e *viewerEngine) SetTimeMultiplier(multiplier float64) {
	e.mu.Lock()
	e.timeMultiplier = multiplier
	e.mu.Unlock()
}

func (e *viewerEngine) SetFieldOfView(fov float64) {
	e.mu.Lock()
	e.fieldOfView = fov
	e.mu.Unlock()
}

func (e *viewerEngine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *viewerEngine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *viewerEngine) DisableProfiler() {
	e.profilingEnabled = false
}
