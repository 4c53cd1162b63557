package main

import (
	"os"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
