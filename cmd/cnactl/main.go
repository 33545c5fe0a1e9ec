package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cna-backend/internal/catalog"
	"cna-backend/internal/common/logger"
	"cna-backend/internal/models"
	"cna-backend/internal/workers/drafting"
	analyzenotice "cna-backend/internal/workers/drafting/analyze-notice"
	draftreply "cna-backend/internal/workers/drafting/draft-reply"
	resolvetemplate "cna-backend/internal/workers/drafting/resolve-template"
	"cna-backend/pkg/registry"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
var version = "dev"

// exitErr carries a numeric exit code through the cobra error path.
type exitErr struct {
	code int
	msg  string
}

func (e *exitErr) Error() string { return e.msg }

func codeError(code int, format string, args ...any) error {
	return &exitErr{code: code, msg: fmt.Sprintf(format, args...)}
}

func main() {
	root := newRootCmd(os.Stdout)
	if err := root.Execute(); err != nil {
		var ee *exitErr
		if errors.As(err, &ee) {
			fmt.Fprintln(os.Stderr, "Error:", ee.msg)
			os.Exit(ee.code)
		}
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "cnactl",
		Short:         "Inspect the notice template catalog and draft replies offline",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(newCatalogCmd(), newResolveCmd(), newAnalyzeCmd(), newDraftCmd())
	return root
}

func newCatalogCmd() *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "List or validate template catalogs",
	}

	var format string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print the embedded catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return codeError(3, "embedded catalog: %s", err)
			}
			return write(cmd.OutOrStdout(), format, map[string]any{
				"version":   cat.Version(),
				"templates": cat.Entries(),
			})
		},
	}
	listCmd.Flags().StringVar(&format, "format", "json", "Output format: json or yaml")

	var path string
	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a registry file with the rules applied to the embedded catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(path)
			if err != nil {
				return codeError(3, "loading registry: %s", err)
			}
			cat, err := catalog.New(reg)
			if err != nil {
				return codeError(2, "invalid catalog: %s", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "catalog %s is valid: %d templates\n", cat.Version(), len(cat.Entries()))
			return nil
		},
	}
	validateCmd.Flags().StringVar(&path, "path", "", "Path to a registry file (.json or .yaml)")
	_ = validateCmd.MarkFlagRequired("path")

	catalogCmd.AddCommand(listCmd, validateCmd)
	return catalogCmd
}

func newResolveCmd() *cobra.Command {
	var input resolvetemplate.Input
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the coarse template for a law and notice type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pipeline()
			if err != nil {
				return err
			}
			out, err := p.Resolver.Execute(cmd.Context(), &input)
			if err != nil {
				return err
			}
			if !out.Matched {
				return codeError(2, "no template for law=%s, notice_type=%s", input.Law, input.NoticeType)
			}
			return write(cmd.OutOrStdout(), "json", map[string]any{"template_selected": out.Template})
		},
	}
	cmd.Flags().StringVar(&input.Law, "law", "", "Law code, e.g. GST")
	cmd.Flags().StringVar(&input.NoticeType, "notice-type", "", "Notice type, e.g. DRC-01")
	_ = cmd.MarkFlagRequired("law")
	_ = cmd.MarkFlagRequired("notice-type")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var law, noticeType, section string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Classify a notice by law, notice type and section",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := pipeline()
			if err != nil {
				return err
			}
			out, err := p.Analyzer.Execute(cmd.Context(), &analyzenotice.Input{
				Law:        law,
				NoticeType: noticeType,
				Section:    models.Section(section),
			})
			if err != nil {
				return err
			}
			if !out.Matched {
				return codeError(2, "%s", out.Message)
			}
			return write(cmd.OutOrStdout(), "json", out.Result)
		},
	}
	cmd.Flags().StringVar(&law, "law", "", "Law code, e.g. GST")
	cmd.Flags().StringVar(&noticeType, "notice-type", "", "Notice type, e.g. DRC-01")
	cmd.Flags().StringVar(&section, "section", "", "Section, e.g. 73")
	for _, name := range []string{"law", "notice-type", "section"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newDraftCmd() *cobra.Command {
	var file, mode string
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Run the full drafting pipeline on a request file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := readDraftInput(file)
			if err != nil {
				return codeError(3, "reading request: %s", err)
			}
			if mode != "" {
				input.DraftingMode = models.Some(mode)
			}
			p, err := pipeline()
			if err != nil {
				return err
			}
			out, err := p.Orchestrator.Execute(cmd.Context(), input)
			if err != nil {
				return err
			}
			if out.Outcome == draftreply.OutcomeGenerated {
				fmt.Fprintln(cmd.OutOrStdout(), out.DraftText)
				return nil
			}
			if err := write(cmd.OutOrStdout(), "json", out); err != nil {
				return err
			}
			return codeError(2, "draft not generated: %s", out.Outcome)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Request file (.json, .yaml or .yml)")
	cmd.Flags().StringVar(&mode, "mode", "", "Override drafting_mode: normal, concise or aggressive")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func pipeline() (*drafting.Pipeline, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, codeError(3, "embedded catalog: %s", err)
	}
	cfg := &draftreply.Config{DefaultMode: models.DraftingModeNormal}
	return drafting.NewPipeline(cat, cfg, logger.NewNoOpLogger()), nil
}

func readDraftInput(path string) (*draftreply.Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var input draftreply.Input
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &input)
	default:
		err = json.Unmarshal(data, &input)
	}
	if err != nil {
		return nil, err
	}
	return &input, nil
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		return codeError(3, "unknown format %q (want json or yaml)", format)
	}
}
