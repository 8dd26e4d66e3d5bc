package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zchown/haliax/pkg/engine"
	"github.com/zchown/haliax/pkg/engine/tei"
	"github.com/seekerror/logw"
)

var (
	hash  = flag.Uint("hash", 16, "Search arena size in MB")
	noise = flag.Float64("noise", 0, "Leaf-evaluation noise, in [0,1] units (zero if deterministic)")
	komi  = flag.Uint("komi", 0, "Flat-win komi, in half-flats")
	seed  = flag.Int64("seed", 0, "Evaluation-noise random seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: haliax [options]

HALIAX is a Tak engine speaking a UCI-shaped Tak Engine Interface.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "haliax", "haliax", engine.WithSeed(*seed), engine.WithOptions(engine.Options{
		Hash:  *hash,
		Noise: float32(*noise),
		Komi:  uint8(*komi),
	}))

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case tei.ProtocolName:
		driver, out := tei.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "Protocol not supported")
	}
}
