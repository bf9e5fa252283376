// Package glitch renders animated background effects onto a 2D surface.
//
// An effect is one of a fixed set of families: particles with neighbour
// links, snow, fireflies, bubbles, a perspective starfield, a sine plasma and
// Perlin fog. Each mounted effect is an independent [Engine] with its own
// entity store, frame loop and listeners.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens an [Ebitengine]
// window and runs one effect until the window is closed:
//
//	err := glitch.Run(glitch.RunConfig{
//		Title:  "snow",
//		Width:  800,
//		Height: 600,
//		Effect: glitch.FamilySnow,
//	})
//
// For other hosts, call [Mount] with a [Surface], a [FrameSource] and the
// [EventTarget] values standing in for the viewport and the element:
//
//	var frames glitch.FrameQueue
//	var viewport, element glitch.EventTarget
//	surface := glitch.NewImageSurface(640, 360, 1)
//
//	h := glitch.Mount(glitch.MountConfig{
//		Effect:   glitch.FamilyParticles,
//		Surface:  surface,
//		Frames:   &frames,
//		Viewport: &viewport,
//		Element:  &element,
//		Width:    640,
//		Height:   360,
//	})
//	defer h.Release()
//
//	for now := time.Duration(0); ; now += time.Second / 60 {
//		frames.Flush(now) // one frame per display tick
//	}
//
// [Headless] wraps that loop for tests and offline rendering, and the term
// package hosts an effect in a terminal.
//
// # Lifecycle
//
// [Mount] never fails. Options are filled from [DefaultOptions] and clamped
// by [Normalize]; every change is logged at warn level. A nil or unusable
// surface yields a disabled engine that registers no listeners and requests
// no frames. [Handle.Release] stops the loop, removes every listener and
// drops the store, and is safe to call more than once.
//
// At most one frame loop runs per engine. Resizes stop the loop, resize the
// surface, reseed the store and restart the loop; a resize observed while a
// frame is executing is applied when the frame ends. Frame callbacks carry
// the generation they were requested for, so a callback delivered after a
// reseed or a release does nothing.
//
// # Frames
//
// Each frame updates every entity through the family's [Strategy] list,
// derives neighbour [Link] values when the family draws links, then draws
// through a [Renderer]. Zero-area surfaces skip the frame. A panic inside a
// frame disables the engine instead of propagating.
//
// # Configuration
//
// Effects can be described in YAML and loaded with [LoadConfig]:
//
//	effect: particles
//	count: 120
//	color: "rgba(0,255,200,0.8)"
//	mouseInteraction: true
//
// [Ebitengine]: https://ebitengine.org
package glitch
