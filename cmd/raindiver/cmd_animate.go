package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"raindiver/engine/export"
	"raindiver/engine/timeline"
)

func runAnimateCommand(args []string) {
	fs := flag.NewFlagSet("animate", flag.ExitOnError)
	rf := addRenderFlags(fs)
	tStart := fs.Float64("t-start", 0, "diver proper time at the first frame")
	tEnd := fs.Float64("t-end", 0, "diver proper time at the last frame (default: horizon crossing)")
	frames := fs.Int("frames", 120, "number of frames to render")
	fps := fs.Float64("fps", 30, "frames per second recorded on the timeline")
	outDir := fs.String("out-dir", "out", "output directory for frame images")
	stem := fs.String("stem", "dive", "frame filename stem")
	ext := fs.String("ext", "png", "frame image format (png or jpg)")
	fs.Usage = func() {
		fmt.Println(`Render a keyframed timeline to a frame sequence

Usage:
  raindiver animate -env sky.png [options]

Options:`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("animate: %v", err)
	}

	startScene, settings, err := rf.buildScene()
	if err != nil {
		log.Fatalf("animate: %v", err)
	}
	endScene := startScene
	endScene.Diver.SetT(*tEnd)
	if *tEnd == 0 {
		endScene.Diver.SetT(endScene.Diver.FinalTime())
	}
	startScene.Diver.SetT(*tStart)

	if *frames < 2 {
		log.Fatalf("animate: -frames must be at least 2")
	}

	tl := timeline.New(1, *frames, *fps)
	tl.SetKeyframe(1, startScene)
	tl.SetKeyframe(*frames, endScene)
	anim := tl.ToAnimation()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("animate: %v", err)
	}

	r := export.NewRenderer()
	err = r.RenderAnimation(context.Background(), anim, settings, *outDir, *stem, *ext, func(done, total int) {
		log.Printf("rendered frame %d/%d", done, total)
	})
	if err != nil {
		log.Fatalf("animate: %v", err)
	}
	log.Printf("wrote %d frames to %s", anim.Len(), *outDir)
}
