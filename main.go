package main

import "github.com/artmamedov/ios-sim-mcp/cmd"

func main() {
	cmd.Execute()
}
