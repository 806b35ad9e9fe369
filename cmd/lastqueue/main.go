package main

import (
	"last_queue/internal/app"

	"github.com/charmbracelet/log"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.Fatal("server stopped", "err", err)
	}
}
