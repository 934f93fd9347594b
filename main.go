package main

import "github.com/notargets/gocells/cmd"

func main() {
	cmd.Execute()
}
