package main

import (
	"go.uber.org/fx"

	"github.com/Conte777/forcesub-bot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
