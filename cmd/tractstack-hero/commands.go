package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	cli "github.com/urfave/cli/v3"

	"github.com/AtRiskMedia/tractstack-hero/internal/application/startup"
	"github.com/AtRiskMedia/tractstack-hero/internal/domain/entities/hero"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/security"
	"github.com/AtRiskMedia/tractstack-hero/internal/infrastructure/variants"
	"github.com/AtRiskMedia/tractstack-hero/internal/presentation/templates"
)

const (
	modeStatic       = "static"
	modeEditor       = "editor"
	modePresentation = "presentation"
)

func runServe(ctx context.Context, _ *cli.Command) error {
	return startup.Initialize(ctx)
}

func loadRegistry(cmd *cli.Command) (*variants.Registry, error) {
	return variants.Load(cmd.String("variants"), logging.NewDiscardLogger())
}

// readAttrs accepts inline JSON or @path.
func readAttrs(value string) ([]byte, error) {
	if path, ok := strings.CutPrefix(value, "@"); ok {
		if path == "-" {
			return io.ReadAll(os.Stdin)
		}
		return os.ReadFile(path)
	}
	return []byte(value), nil
}

func renderSnapshot(registry *variants.Registry, variantName, rawAttrs, mode string, w io.Writer) error {
	v, err := registry.Resolve(variantName)
	if err != nil {
		return err
	}

	data, err := readAttrs(rawAttrs)
	if err != nil {
		return fmt.Errorf("unable to read attributes: %w", err)
	}
	var patch hero.Patch
	if err := json.Unmarshal(data, &patch); err != nil {
		return fmt.Errorf("unable to parse attributes: %w", err)
	}
	if err := patch.Validate(v); err != nil {
		return fmt.Errorf("invalid attributes: %w", err)
	}
	attrs := patch.Apply(v.NewAttributes())

	renderer := templates.NewHeroRenderer(templates.NewMinifier(), logging.NewDiscardLogger())
	switch mode {
	case modeStatic:
		html, err := renderer.RenderStatic(v, attrs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err
	case modeEditor:
		html, err := renderer.RenderEditor("", v, attrs)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, html)
		return err
	case modePresentation:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(renderer.Presentation(v, attrs))
	default:
		return fmt.Errorf("unknown mode %q (supported: %s, %s, %s)", mode, modeStatic, modeEditor, modePresentation)
	}
}

func runRender(_ context.Context, cmd *cli.Command) error {
	registry, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	return renderSnapshot(registry, cmd.String("variant"), cmd.String("attrs"), cmd.String("mode"), os.Stdout)
}

func runHashPassword(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return errors.New("exactly one PASSWORD argument is required")
	}
	hash, err := security.HashPassword(cmd.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(hash)
	return nil
}

func listVariants(registry *variants.Registry, inspector string, w io.Writer) error {
	if inspector != "" {
		v, err := registry.Get(inspector)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v.Inspector())
	}

	def := registry.DefaultVariant().Name
	for _, v := range registry.List() {
		marker := " "
		if v.Name == def {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %-16s %s\n", marker, v.Name, v.Title); err != nil {
			return err
		}
	}
	return nil
}

func runVariants(_ context.Context, cmd *cli.Command) error {
	registry, err := loadRegistry(cmd)
	if err != nil {
		return err
	}
	return listVariants(registry, cmd.String("inspector"), os.Stdout)
}
