package main

import "statup/cmd"

func main() {
	cmd.Execute()
}
