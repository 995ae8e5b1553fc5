package main

import (
	"log"

	"github.com/shoppinh/jp-order-BE/internal/app"
	"github.com/shoppinh/jp-order-BE/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	a, err := app.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
