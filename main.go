package main

import "github.com/notargets/lb2dgeom/cmd"

func main() {
	cmd.Execute()
}
