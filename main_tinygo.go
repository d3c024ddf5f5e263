//go:build tinygo

package main

import (
	"dial/app"
	"dial/hal"
)

func main() {
	app.Run(hal.New())
}
