package main

import "github.com/rozeen-shrestha/confession/cmd"

func main() {
	cmd.Execute()
}
