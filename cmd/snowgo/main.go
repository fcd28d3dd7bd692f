package main

import "github.com/obinnaokechukwu/snowgo/internal/cmd"

func main() {
	cmd.Execute()
}
