package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"

	"gonum.org/v1/gonum/spatial/r3"

	"raindiver/engine/camera"
	"raindiver/engine/diver"
	"raindiver/engine/environment"
	"raindiver/engine/export"
	"raindiver/engine/scene"
)

// renderFlags holds the flags shared by the render and animate
// subcommands.
type renderFlags struct {
	env           string
	width, height int
	superSample   int
	projection    string
	fov           float64
	rInit         float64
	t             float64
	gr            bool
	lookX         float64
	lookY         float64
	lookZ         float64
	upX           float64
	upY           float64
	upZ           float64
}

func addRenderFlags(fs *flag.FlagSet) *renderFlags {
	f := &renderFlags{}
	fs.StringVar(&f.env, "env", "", "path to an equirectangular (2:1) background image")
	fs.IntVar(&f.width, "width", 960, "output width in pixels")
	fs.IntVar(&f.height, "height", 540, "output height in pixels")
	fs.IntVar(&f.superSample, "supersample", 1, "supersampling factor per axis before downscale")
	fs.StringVar(&f.projection, "projection", "perspective", "perspective or equirectangular")
	fs.Float64Var(&f.fov, "fov", 1.2, "vertical field of view in radians (perspective only)")
	fs.Float64Var(&f.rInit, "r-init", 20, "diver release radius, in units of the black-hole mass M")
	fs.Float64Var(&f.t, "t", 0, "diver proper time since release")
	fs.BoolVar(&f.gr, "gr", true, "enable relativistic light bending (false: straight rays, shadow still opaque)")
	fs.Float64Var(&f.lookX, "look-x", 0, "camera look direction x")
	fs.Float64Var(&f.lookY, "look-y", 0, "camera look direction y")
	fs.Float64Var(&f.lookZ, "look-z", -1, "camera look direction z")
	fs.Float64Var(&f.upX, "up-x", 0, "camera up vector x")
	fs.Float64Var(&f.upY, "up-y", 1, "camera up vector y")
	fs.Float64Var(&f.upZ, "up-z", 0, "camera up vector z")
	return f
}

func (f *renderFlags) projectionValue() (camera.Projection, error) {
	switch f.projection {
	case "perspective":
		return camera.Perspective, nil
	case "equirectangular":
		return camera.Equirectangular, nil
	default:
		return 0, fmt.Errorf("unknown projection %q (want perspective or equirectangular)", f.projection)
	}
}

func (f *renderFlags) buildScene() (scene.Scene, scene.RenderSettings, error) {
	proj, err := f.projectionValue()
	if err != nil {
		return scene.Scene{}, scene.RenderSettings{}, err
	}

	if f.env == "" {
		return scene.Scene{}, scene.RenderSettings{}, fmt.Errorf("-env is required")
	}
	envFile, err := os.Open(f.env)
	if err != nil {
		return scene.Scene{}, scene.RenderSettings{}, fmt.Errorf("open environment image: %w", err)
	}
	defer envFile.Close()

	img, _, err := image.Decode(envFile)
	if err != nil {
		return scene.Scene{}, scene.RenderSettings{}, fmt.Errorf("decode environment image: %w", err)
	}
	env, err := environment.New(img)
	if err != nil {
		return scene.Scene{}, scene.RenderSettings{}, err
	}

	cam := camera.New(f.fov)
	if proj == camera.Equirectangular {
		cam = camera.NewEquirectangular()
	}
	if err := cam.LookAt(r3.Vec{X: f.lookX, Y: f.lookY, Z: f.lookZ}, r3.Vec{X: f.upX, Y: f.upY, Z: f.upZ}); err != nil {
		return scene.Scene{}, scene.RenderSettings{}, fmt.Errorf("camera look-at: %w", err)
	}

	d := diver.New(f.rInit)
	d.SetT(f.t)

	sc := scene.Scene{Camera: cam, Env: env, Diver: d, GR: f.gr}
	settings := scene.RenderSettings{
		Projection:    proj,
		Width:         f.width,
		Height:        f.height,
		SuperSampling: f.superSample,
	}
	return sc, settings, nil
}

func runRenderCommand(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	rf := addRenderFlags(fs)
	out := fs.String("out", "render.png", "output image path (.png or .jpg)")
	fs.Usage = func() {
		fmt.Println(`Render a single frame

Usage:
  raindiver render -env sky.png [options]

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("render: %v", err)
	}

	sc, settings, err := rf.buildScene()
	if err != nil {
		log.Fatalf("render: %v", err)
	}

	r := export.NewRenderer()
	if err := r.RenderFrame(context.Background(), sc, settings, *out); err != nil {
		log.Fatalf("render: %v", err)
	}
	log.Printf("wrote %s", *out)
}
