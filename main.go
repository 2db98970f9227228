package main

import (
	"os"

	"github.com/NotDannyCrawford/aws-deploy-skill/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
