package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newSurveyPicker()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "load-templates:", err)
		os.Exit(1)
	}
}
