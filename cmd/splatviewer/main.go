// Package main is the entry point for the splat viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/triangulate/splatgo/internal/config"
	"github.com/triangulate/splatgo/internal/engine/camera"
	"github.com/triangulate/splatgo/internal/engine/demo"
	"github.com/triangulate/splatgo/internal/engine/input"
	"github.com/triangulate/splatgo/internal/engine/renderer"
	"github.com/triangulate/splatgo/internal/engine/splat"
	"github.com/triangulate/splatgo/internal/engine/window"
	"github.com/triangulate/splatgo/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Splat Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	win, err := window.New(window.Config{
		Title:      "splatviewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("failed to create window", zap.Error(err))
		os.Exit(1)
	}
	defer win.Close()

	rend, err := renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
		VSync:  cfg.Graphics.VSync,
	})
	if err != nil {
		logger.Error("failed to create renderer", zap.Error(err))
		os.Exit(1)
	}
	defer rend.Close()

	var scene *splat.Scene
	if cfg.Scene.UseDirectColors {
		scene = demo.IcosphereScene(2)
	} else {
		scene = demo.IcosphereSHScene(2)
	}
	geometry, err := splat.BuildGeometry(scene)
	if err != nil {
		logger.Error("failed to build geometry", zap.Error(err))
		os.Exit(1)
	}
	rend.LoadGeometry(geometry)

	cam := camera.NewOrbitCamera()
	cam.SetAspect(cfg.Graphics.Width, cfg.Graphics.Height)
	cam.FitToBounds(-1, -1, -1, 1, 1, 1)

	in := input.New()

	var nowMS int64
	dragging := false

	logger.Info("entering main loop")
	for {
		if quit := in.Update(); quit {
			break
		}

		stop := false
		for _, e := range in.Events() {
			switch e.Type {
			case input.EventQuit:
				stop = true
			case input.EventWindowResize:
				rend.Resize(e.Width, e.Height)
				cam.SetAspect(e.Width, e.Height)
			case input.EventMouseDown:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = true
				}
			case input.EventMouseUp:
				if e.Button == sdl.BUTTON_LEFT {
					dragging = false
				}
			case input.EventMouseMove:
				if dragging {
					cam.HandleDrag(float32(e.RelX), float32(e.RelY))
				}
			case input.EventMouseWheel:
				cam.HandleZoom(e.WheelY)
			}
		}
		if stop || in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
			break
		}

		nowMS += 16

		rend.DrainSortResults()
		rend.Begin(renderer.Frame{
			ModelView:  cam.ViewMatrix(),
			Projection: cam.Projection(),
			CameraPos:  cam.WorldPosition(),
			Sigma:      cfg.Scene.Sigma,
			Debug:      false,
			Centroids:  geometry.Centroids,
			NowMS:      nowMS,
		})
		rend.Draw()
		rend.End()

		win.SwapBuffers()
	}

	logger.Info("splat viewer closed normally")
}
