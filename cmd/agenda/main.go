package main

import "agendafeed/internal/delivery/cli"

func main() {
	cli.Execute()
}
