package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/tunefetch/internal/app"
	"github.com/handiism/tunefetch/internal/audio"
	"github.com/handiism/tunefetch/internal/config"
	"github.com/handiism/tunefetch/internal/model"
	"github.com/handiism/tunefetch/internal/pipeline"
)

func main() {
	// Command line flags
	var (
		configFlag     = flag.String("config", "", "Path to config file (default: config.json next to the executable)")
		initConfigFlag = flag.Bool("init-config", false, "Write a default config file and exit")
		verboseFlag    = flag.Bool("verbose", false, "Show verbose output")
		songFlag       = flag.String("song", "", "Song name (non-interactive mode)")
		artistFlag     = flag.String("artist", "", "Artist name (non-interactive mode)")
		albumFlag      = flag.String("album", "", "Album name (non-interactive mode)")
		genreFlag      = flag.String("genre", "", "Genre (non-interactive mode)")
		pickCoverFlag  = flag.Int("pick-cover", 0, "Cover candidate to use in non-interactive mode, 0 for none")
		pickVideoFlag  = flag.Int("pick-video", 1, "Video candidate to use in non-interactive mode")
	)

	flag.Parse()

	configPath := *configFlag
	if configPath == "" {
		var err error
		if configPath, err = config.DefaultPath(); err != nil {
			fatal(err)
		}
	}

	if *initConfigFlag {
		if err := config.DefaultSettings().Save(configPath); err != nil {
			fatal(err)
		}
		fmt.Printf("Wrote default configuration to %s; set ffmpeg_location before the first run.\n", configPath)
		return
	}

	settings, err := app.LoadSettings(configPath)
	if err != nil {
		fatal(err)
	}
	baseDir, err := config.BaseDir()
	if err != nil {
		fatal(err)
	}

	// Handle interrupts
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(settings, baseDir, os.Stderr, *verboseFlag, printer(os.Stdout, *verboseFlag))
	if err != nil {
		fatal(err)
	}

	if *songFlag != "" || *artistFlag != "" {
		q := model.NewSearchQuery(*songFlag, *artistFlag, *albumFlag, *genreFlag)
		result := a.Pipeline.Run(ctx, q, pipeline.FixedSelector{Cover: *pickCoverFlag, Video: *pickVideoFlag})
		report(os.Stdout, result)
		if result.Outcome != pipeline.OutcomeDone {
			os.Exit(2)
		}
		return
	}

	interactive(ctx, a.Pipeline, newPrompter(os.Stdin, os.Stdout), os.Stdout)
}

// interactive runs the prompt loop until the user stops or input ends.
func interactive(ctx context.Context, p *pipeline.Pipeline, pr *prompter, out io.Writer) {
	for ctx.Err() == nil {
		q, err := pr.readQuery()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(out, "An error occurred: %v\n", err)
			}
			return
		}

		result := p.Run(ctx, q, pr)
		switch result.Outcome {
		case pipeline.OutcomeExit:
			fmt.Fprintln(out, "Exiting.")
			return
		case pipeline.OutcomeInvalid, pipeline.OutcomeNoMatch, pipeline.OutcomeRetry:
			continue
		}

		report(out, result)
		if !result.Outcome.AsksAnother() || !pr.again() {
			fmt.Fprintln(out, "Exiting. Goodbye!")
			return
		}
	}
}

// report prints the read-back tags of a finished file.
func report(out io.Writer, result pipeline.Result) {
	if result.Artifact == nil {
		return
	}
	summary, err := audio.Inspect(result.Artifact.FilePath)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "   %s\n", summary)
}

// printer renders progress events the way the prompts expect them.
func printer(out io.Writer, verbose bool) func(pipeline.ProgressEvent) {
	return func(event pipeline.ProgressEvent) {
		if event.Level == pipeline.LevelVerbose && !verbose {
			return
		}

		prefix := ""
		switch event.Level {
		case pipeline.LevelError:
			prefix = "✗ "
		case pipeline.LevelWarning:
			prefix = "! "
		case pipeline.LevelSuccess:
			prefix = "\n✓ "
		case pipeline.LevelInfo:
			prefix = "› "
		default:
			prefix = "  "
		}

		fmt.Fprintln(out, prefix+event.Message)
	}
}

func fatal(err error) {
	var cfgErr *config.Error
	if errors.As(err, &cfgErr) {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(1)
}
