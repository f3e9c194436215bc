package main

import (
	"context"
	"log"

	"github.com/BarathG2005/hackthon-mangament-plateform/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
