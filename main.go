package main

import "github.com/theirongolddev/tracks/cmd"

func main() {
	cmd.Execute()
}
