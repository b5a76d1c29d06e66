package main

import "postfeed/cmd"

func main() {
	cmd.Execute()
}
