package main

import (
	"github.com/meteocheck/core/internal/app"
	"github.com/meteocheck/core/internal/config"
)

func main() {
	app.Go(config.Load())
}
