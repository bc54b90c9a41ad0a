package main

import (
	"github.com/barmonse/teg-server/internal/cli"
)

func main() {
	cli.Execute()
}
