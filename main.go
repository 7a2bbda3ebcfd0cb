package main

import "github.com/inovacc/curatr/cmd"

func main() {
	cmd.Execute()
}
