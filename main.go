package main

import (
	"os"

	"github.com/satviksrivastava7-cnx/question-bank-gen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
