package main

import "github.com/MyCarrier-DevOps/go-gitstamp/cmd"

func main() {
	cmd.Execute()
}
