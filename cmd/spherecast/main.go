// spherecast - Terminal sphere ray caster
// Casts one ray per pixel against a scene of Phong-shaded spheres and shows
// the result in your terminal, or renders it to a PNG.
//
// Viewer controls:
//
//	Mouse drag  - Orbit the camera (yaw/pitch)
//	Scroll      - Dolly in/out
//	W/S         - Pitch up/down
//	A/D         - Yaw left/right
//	Q/E         - Narrow/widen the field of view
//	+/-         - Dolly in/out
//	Tab         - Select the next light
//	L           - Light positioning mode (move mouse, click to set, Esc to cancel)
//	P           - Save a PNG snapshot
//	R           - Reset the view
//	?           - Toggle HUD overlay
//	Esc         - Quit (or cancel light mode)
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/spherecast/pkg/math3d"
	"github.com/taigrr/spherecast/pkg/models"
	"github.com/taigrr/spherecast/pkg/render"
	"github.com/taigrr/spherecast/pkg/trace"
)

func main() {
	root := &cobra.Command{
		Use:   "spherecast",
		Short: "Phong-shaded sphere ray casting in the terminal",
		Long: "spherecast casts one ray per pixel against a scene of spheres and\n" +
			"evaluates Phong lighting at the nearest hit. Scenes can be authored\n" +
			"as glTF files (mesh nodes become spheres) or left to the built-in\n" +
			"default: two unit spheres under a key and a fill light.",
	}
	root.AddCommand(newViewCmd(), newRenderCmd())

	if err := fang.Execute(context.Background(), root); err != nil {
		os.Exit(1)
	}
}

// loadScene builds the scene from the optional positional argument, falling
// back to the built-in default.
func loadScene(args []string) (*trace.Scene, string, error) {
	if len(args) == 0 {
		return trace.DefaultScene(), "default scene", nil
	}
	scene, err := models.LoadScene(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("load scene: %w", err)
	}
	return scene, filepath.Base(args[0]), nil
}

// parseBackground parses an "R,G,B" byte triple into a linear color.
func parseBackground(s string) (math3d.Vec4, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%d,%d,%d", &r, &g, &b); err != nil {
		return math3d.Vec4{}, fmt.Errorf("background %q: want R,G,B", s)
	}
	return math3d.V4(float64(r)/255, float64(g)/255, float64(b)/255, 1), nil
}

func newViewCmd() *cobra.Command {
	var (
		fps     int
		workers int
		bg      string
	)

	cmd := &cobra.Command{
		Use:   "view [scene.glb]",
		Short: "View a scene interactively in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, name, err := loadScene(args)
			if err != nil {
				return err
			}
			if bg != "" {
				if scene.Background, err = parseBackground(bg); err != nil {
					return err
				}
			}
			return runViewer(scene, name, fps, workers)
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	cmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = all CPUs)")
	cmd.Flags().StringVar(&bg, "bg", "", "background color (R,G,B)")

	return cmd
}

func newRenderCmd() *cobra.Command {
	var (
		width   int
		height  int
		workers int
		output  string
		bg      string
	)

	cmd := &cobra.Command{
		Use:   "render [scene.glb]",
		Short: "Render a scene to a PNG file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scene, name, err := loadScene(args)
			if err != nil {
				return err
			}
			if bg != "" {
				if scene.Background, err = parseBackground(bg); err != nil {
					return err
				}
			}

			r := trace.NewRenderer()
			r.SetWorkers(workers)

			start := time.Now()
			img := r.Render(scene, width, height)
			fmt.Fprintf(cmd.OutOrStdout(), "Rendered %s at %dx%d in %v\n",
				name, width, height, time.Since(start).Round(time.Millisecond))

			fb := render.NewFramebuffer(width, height)
			fb.Blit(img)
			if err := fb.SavePNG(output); err != nil {
				return fmt.Errorf("save png: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", output)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", trace.DefaultWidth, "output width in pixels")
	cmd.Flags().IntVar(&height, "height", trace.DefaultHeight, "output height in pixels")
	cmd.Flags().IntVar(&workers, "workers", 0, "render workers (0 = all CPUs)")
	cmd.Flags().StringVarP(&output, "output", "o", "render.png", "output file path")
	cmd.Flags().StringVar(&bg, "bg", "", "background color (R,G,B)")

	return cmd
}
