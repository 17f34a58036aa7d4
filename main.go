package main

import "github.com/teamtracker/teamtracker-api/cmd"

func main() {
	cmd.Execute()
}
