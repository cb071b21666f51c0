package main

import (
	"github.com/alliedscientific/delivery-svc/internal/app"
	"github.com/alliedscientific/delivery-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
