// Command analyze runs a local product photo through the same pipeline as
// POST /api/analyze and prints the resulting JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/LazizjanAsatov/Catra/internal/config"
	"github.com/LazizjanAsatov/Catra/internal/domain"
	"github.com/LazizjanAsatov/Catra/internal/provider"
	"github.com/LazizjanAsatov/Catra/internal/service"
	"github.com/LazizjanAsatov/Catra/pkg/logger"
	"github.com/LazizjanAsatov/Catra/pkg/utils"
)

// providerFactory returns the model client for cfg, or nil when no
// credential is configured.
type providerFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (provider.Provider, error)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args, os.Stdout, os.Stderr, geminiProvider)
	stop()
	os.Exit(code)
}

func geminiProvider(ctx context.Context, cfg *config.Config, log *zap.Logger) (provider.Provider, error) {
	if !cfg.HasCredentials() {
		return nil, nil
	}
	return provider.NewGeminiProvider(ctx, &cfg.Gemini, log)
}

// run returns 0 on success, 1 on any load or pipeline error and 2 on
// bad usage.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, newProvider providerFactory) int {
	name := "analyze"
	if len(args) > 0 {
		name = filepath.Base(args[0])
		args = args[1:]
	}

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	model := flags.StringP("model", "m", "", "Gemini model id (overrides GEMINI_MODEL)")
	mimeType := flags.String("mime", "", "MIME type of the image (sniffed when empty)")
	pretty := flags.BoolP("pretty", "p", false, "indent the JSON output")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <image>\n", name)
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return 1
	}
	if *model != "" {
		cfg.Gemini.Model = *model
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(stderr, "init logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	path := flags.Arg(0)
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "read image: %v\n", err)
		return 1
	}

	p, err := newProvider(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(stderr, "init provider: %v\n", err)
		return 1
	}

	svc := service.NewAnalysisService(p, cfg, log)
	payload, err := svc.Analyze(ctx, &domain.UploadedImage{
		Filename:    filepath.Base(path),
		ContentType: utils.ContentType(*mimeType, data),
		Size:        int64(len(data)),
		Data:        data,
	})
	if err != nil {
		log.Debug("Analysis failed", zap.Error(err))
		fmt.Fprintf(stderr, "%s: %v\n", domain.KindOf(err), err)
		var de *domain.Error
		if errors.As(err, &de) && de.Raw != "" {
			fmt.Fprintln(stderr, de.Raw)
		}
		return 1
	}

	var out []byte
	if *pretty {
		out, err = json.MarshalIndent(payload, "", "  ")
	} else {
		out, err = json.Marshal(payload)
	}
	if err != nil {
		fmt.Fprintf(stderr, "encode payload: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}
