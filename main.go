package main

import (
	"os"

	"github.com/cheerioskun/tinterval/internal/cmd"
	"github.com/cheerioskun/tinterval/internal/utils"
)

func main() {
	err := cmd.Execute()
	utils.GetLogger().Close()
	if err != nil {
		os.Exit(1)
	}
}
