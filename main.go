package main

import "theaterwecker/cmd"

func main() {
	cmd.Execute()
}
