package main

import "github.com/twiced-technology-gmbh/taskrank/cmd"

func main() {
	cmd.Execute()
}
