package main

import "github.com/aiweb/cmd"

func main() {
	cmd.Execute()
}
