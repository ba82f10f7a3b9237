package main

import "github.com/frahmantamala/talent-intake/cmd"

func main() {
	cmd.Execute()
}
