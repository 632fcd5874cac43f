package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	cvform "github.com/goliatone/go-cvform"
	"github.com/goliatone/go-cvform/pkg/cv"
	"github.com/goliatone/go-cvform/pkg/photo"
	"github.com/goliatone/go-cvform/pkg/renderers/tui"
	"github.com/goliatone/go-cvform/pkg/templates"
)

type config struct {
	Output   string        `env:"CVFORM_OUTPUT" envDefault:"cv.html"`
	LogLevel string        `env:"CVFORM_LOG_LEVEL" envDefault:"info"`
	Timeout  time.Duration `env:"CVFORM_TIMEOUT" envDefault:"10m"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "parse environment: %v\n", err)
		os.Exit(1)
	}

	var (
		resumeFlag   = flag.String("resume", "", "Path to a saved CV record (JSON) to resume from")
		saveFlag     = flag.String("save", "", "Optional path to save the assembled record as JSON")
		photoFlag    = flag.String("photo", "", "Path to a profile photo to attach")
		templateFlag = flag.String("template", "", "Template style override (professional, modern, minimal)")
		outputFlag   = flag.String("output", cfg.Output, "File path for the rendered HTML")
		fillFlag     = flag.Bool("fill", true, "Walk the form interactively before rendering")
	)
	flag.Parse()

	log := newLogger(cfg.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	form := cvform.NewForm()
	if *resumeFlag != "" {
		doc, err := readRecord(*resumeFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("resume record")
		}
		if err := form.Load(doc); err != nil {
			log.Fatal().Err(err).Msg("load record")
		}
		log.Info().Str("path", *resumeFlag).Msg("resumed saved record")
	}

	if *fillFlag {
		filler := tui.New(form)
		if err := filler.Run(ctx); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				log.Warn().Msg("input aborted")
				os.Exit(130)
			}
			log.Fatal().Err(err).Msg("fill form")
		}
	}

	if *photoFlag != "" {
		attachPhoto(ctx, log, form, *photoFlag)
	}

	if *templateFlag != "" {
		panel := cvform.TemplatePanel(form)
		if err := panel.SelectTemplate(templates.ID(*templateFlag)); err != nil {
			log.Fatal().Err(err).Msg("select template")
		}
	}

	doc, err := form.Snapshot()
	if err != nil {
		log.Fatal().Err(err).Msg("snapshot record")
	}

	if *saveFlag != "" {
		if err := writeRecord(*saveFlag, doc); err != nil {
			log.Fatal().Err(err).Msg("save record")
		}
		log.Info().Str("path", *saveFlag).Msg("saved record")
	}

	if err := doc.Validate(); err != nil {
		for path, msgs := range cv.ValidationMessages(err) {
			for _, msg := range msgs {
				log.Warn().Str("field", path).Msg(msg)
			}
		}
		log.Fatal().Msg("record is incomplete, fix the fields above")
	}

	html, err := cvform.RenderHTML(ctx, doc)
	if err != nil {
		log.Fatal().Err(err).Msg("render")
	}

	if err := writeFile(*outputFlag, html); err != nil {
		log.Fatal().Err(err).Msg("write output")
	}
	log.Info().Str("path", *outputFlag).Int("bytes", len(html)).Msg("wrote CV")
}

func attachPhoto(ctx context.Context, log zerolog.Logger, form *cvform.Container, path string) {
	file, err := photo.FromPath(path)
	if err != nil {
		log.Fatal().Err(err).Msg("open photo")
	}

	ctrl := cvform.NewPhotoController(form, photo.WithLogger(log))
	defer ctrl.Close()

	result := <-ctrl.Select(ctx, file)
	if result.Err != nil {
		log.Fatal().Str("reason", result.Err.Kind.String()).Msg(result.Err.Error())
	}
	log.Info().Str("path", path).Msg("attached photo")
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(parsed).
		With().Timestamp().Logger()
}

func readRecord(path string) (cv.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cv.Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	var doc cv.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return cv.Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc, nil
}

func writeRecord(path string, doc cv.Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
