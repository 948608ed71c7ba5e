package main

import "github.com/marinamaarina/analisedecontato/cmd"

func main() {
	cmd.Execute()
}
