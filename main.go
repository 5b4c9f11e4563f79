package main

import "github.com/jsphweid/notefall/cmd"

func main() {
	cmd.Execute()
}
