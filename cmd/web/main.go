package main

import "aiforge_backend/internal/app"

func main() {
	app.Run()
}
