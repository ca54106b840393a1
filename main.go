package main

import "github.com/OuchiGenki/comp-prog-trainer/cmd"

func main() {
	cmd.Execute()
}
