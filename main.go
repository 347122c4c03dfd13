package main

import "github.com/josephlewis42/wish/cmd"

func main() {
	cmd.Execute()
}
