package main

import "github.com/Tiliavir/chrono/cmd"

func main() {
	cmd.Execute()
}
