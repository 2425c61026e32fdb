package main

import "github.com/CuriouzK0d3r/cli-novel-writer-sub006/cmd"

func main() {
	cmd.Execute()
}
