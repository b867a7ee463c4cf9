package main

import "github.com/KatelynHaworth/gbl-helper/internal/cmd"

func main() {
	cmd.Execute()
}
