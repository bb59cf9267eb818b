package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/cairnwood/areacore/internal/scenario"
	"github.com/cairnwood/areacore/internal/view"
)

func main() {
	var seed int64
	flag.Int64Var(&seed, "seed", 42, "scenario RNG seed")
	flag.Parse()

	log := logrus.New()
	scn, err := scenario.Default(seed)
	if err != nil {
		log.WithError(err).Fatal("scenario construction failed")
	}

	v := view.New(scn, log)
	ebiten.SetWindowTitle("areacore")
	ebiten.SetWindowSize(v.WindowSize())
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
