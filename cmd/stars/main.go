package main

import (
	"github.com/andrescamacho/stars-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
