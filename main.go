package main

import "github.com/droidrun/droid-cli/cmd"

func main() {
	cmd.Execute()
}
