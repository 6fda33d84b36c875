package main

import "github.com/MyelinBots/connectmap-go/internal/cli"

func main() {
	cli.Execute()
}
