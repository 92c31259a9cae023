package main

import "hrops/internal/app/server"

func main() {
	server.Run()
}
