package main

import "github.com/user/clip-trimmer/cmd"

// version is set via ldflags during build
var version = "0.1.0-dev"

func main() {
	cmd.SetVersion(version)
	cmd.Execute()
}
