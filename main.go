package main

import "anime-tracker/cmd"

func main() {
	cmd.Execute()
}
