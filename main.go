package main

import "github.com/jpeter96/langInterpreterTranslator/cmd"

var version = "v0.3.0"

func main() {
	cmd.Execute(version)
}
