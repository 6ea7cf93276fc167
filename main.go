package main

import (
	"github.com/xbh0403/CSE-282-Project/cmd"
)

func main() {
	cmd.Execute() // initialize cobra commands
}
