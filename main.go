package main

import "ruleset-combiner/cmd"

func main() {
	cmd.Execute()
}
