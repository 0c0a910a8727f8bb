package main

import "pressroom_backend/internal/app"

func main() {
	app.Run()
}
