package main

import "github.com/tallybook/tally/cmd"

func main() {
	cmd.Execute()
}
