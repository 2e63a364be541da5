package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"hirelens/internal/analyses"
	"hirelens/internal/bootstrap"
	"hirelens/internal/extract"
	"hirelens/internal/shared/config"
	"hirelens/internal/shared/telemetry"
	"hirelens/resume/model"
	"hirelens/resume/parser"
)

type output struct {
	File     string                 `json:"file"`
	Resume   model.StructuredResume `json:"parsed_resume"`
	Analysis *analyses.Result       `json:"ai_analysis,omitempty"`
}

func main() {
	if err := run(os.Args[1:], config.Load(), os.Stdout); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args, processes one resume and writes indented JSON to stdout.
// Deferred cleanup always runs before main decides the exit code.
func run(args []string, cfg config.Config, stdout io.Writer) error {
	flags := pflag.NewFlagSet("parse", pflag.ContinueOnError)
	resumePath := flags.String("resume", "", "Path to resume file (pdf or docx)")
	analyze := flags.Bool("analyze", false, "Run the LLM analysis on the extracted text")
	outPath := flags.String("out", "", "Path to write JSON output (optional)")
	provider := flags.String("provider", cfg.LLMProvider, "LLM provider (gemini|openai)")
	modelName := flags.String("model", cfg.LLMModel, "LLM model")
	logLevel := flags.String("log-level", "warn", "Log level")
	if err := flags.Parse(args); err != nil {
		return err
	}

	telemetry.SetLevel(*logLevel)

	if strings.TrimSpace(*resumePath) == "" {
		return errors.New("resume path is required")
	}

	data, err := os.ReadFile(*resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	fileName := filepath.Base(*resumePath)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLMTimeout+30*time.Second)
	defer cancel()

	text, err := extract.ExtractTextFromBytes(ctx, data, fileName)
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	out := output{File: fileName, Resume: parser.ParseText(text)}

	if *analyze {
		cfg.LLMProvider = strings.ToLower(strings.TrimSpace(*provider))
		cfg.LLMModel = *modelName
		client, closer, err := bootstrap.BuildLLM(ctx, cfg)
		if err != nil {
			return fmt.Errorf("llm client: %w", err)
		}
		if closer != nil {
			defer closer()
		}
		result, err := analyses.NewService(client).Analyze(ctx, text)
		if err != nil {
			return fmt.Errorf("analyze: %w", err)
		}
		out.Analysis = &result
	}

	pretty, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("format json: %w", err)
	}
	pretty = append(pretty, '\n')

	if *outPath != "" {
		if err := os.WriteFile(*outPath, pretty, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}

	if _, err := stdout.Write(pretty); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}
