package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/handiism/tunefetch/internal/app"
	"github.com/handiism/tunefetch/internal/config"
	"github.com/handiism/tunefetch/internal/pipeline"
	"github.com/handiism/tunefetch/internal/tui"
)

func main() {
	var (
		configFlag  = flag.String("config", "", "Path to config file (default: config.json next to the executable)")
		verboseFlag = flag.Bool("verbose", false, "Show verbose output")
		logFileFlag = flag.String("log-file", "", "Write logs to this file (logs are discarded otherwise)")
	)
	flag.Parse()

	settings, err := app.LoadSettings(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	baseDir, err := config.BaseDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if *logFileFlag != "" {
		f, err := os.OpenFile(*logFileFlag, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	err = tui.Run(func(onProgress func(pipeline.ProgressEvent), onBytes func(read, total int64)) (*pipeline.Pipeline, error) {
		a, err := app.New(settings, baseDir, logOut, *verboseFlag, onProgress)
		if err != nil {
			return nil, err
		}
		a.Acquirer.OnProgress = onBytes
		return a.Pipeline, nil
	}, *verboseFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
