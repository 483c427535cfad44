package main

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"slices"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/internal/tester"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
)

type sendFlags struct {
	baseURL  string
	path     string
	method   string
	prompt   string
	promptID string
	dataType string
	text     string
	json     string
	image    string
	record   bool
}

func newSendCmd(current func() *app) *cobra.Command {
	f := &sendFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send one request to the target API",
		Long: `Send one request to the target API and print the JSON response.

GET requests carry the prompt and any JSON object members as query
parameters. POST requests send a JSON body, or a multipart form when
--type image is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := current()

			sub, err := f.submission(cmd, a)
			if err != nil {
				return err
			}

			outcome, err := a.domain.Tester.Submit(cmd.Context(), sub)
			if err != nil {
				return err
			}

			if done, err := a.out.value(outcome); done {
				return err
			}
			return printOutcome(a.out, outcome)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.baseURL, "base-url", "", "API base URL (default from config)")
	flags.StringVar(&f.path, "path", "", "path appended to the base URL (default from config)")
	flags.StringVarP(&f.method, "method", "X", "GET", "GET or POST")
	flags.StringVarP(&f.prompt, "prompt", "p", "", "prompt text")
	flags.StringVar(&f.promptID, "prompt-id", "", "use a saved prompt by id or name")
	flags.StringVarP(&f.dataType, "type", "t", "none", "data type: none, text, json or image")
	flags.StringVar(&f.text, "text", "", "text payload for --type text")
	flags.StringVar(&f.json, "data", "", "JSON payload for --type json")
	flags.StringVarP(&f.image, "image", "i", "", "image file for --type image")
	flags.BoolVarP(&f.record, "record", "r", false, "record the exchange in history")

	return cmd
}

func (f *sendFlags) submission(cmd *cobra.Command, a *app) (tester.Submission, error) {
	sub := tester.Submission{
		BaseURL:  f.baseURL,
		Path:     f.path,
		Method:   f.method,
		Prompt:   f.prompt,
		DataType: f.dataType,
		Text:     f.text,
		Record:   f.record,
	}

	if f.json != "" {
		sub.JSON = []byte(f.json)
	}

	if f.promptID != "" {
		p, err := findPrompt(cmd, a, f.promptID)
		if err != nil {
			return sub, err
		}
		sub.PromptID = &p.ID
		if sub.Prompt == "" {
			sub.Prompt = p.Content
		}
	}

	if f.image != "" {
		img, err := readImage(f.image, a.cfg.API.MaxUploadSizeBytes())
		if err != nil {
			return sub, err
		}
		sub.Image = img
	}

	return sub, nil
}

func readImage(path string, limit int64) (*dispatch.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if info.Size() > limit {
		return nil, tester.ErrFileTooLarge
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	return &dispatch.File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func printOutcome(out *printer, o *tester.Outcome) error {
	out.line("%s %s %s", out.status(o.Status), o.Method, o.URL)
	if o.HistoryID != nil {
		out.field("recorded", o.HistoryID.String())
	}
	if o.ImagePath != nil {
		out.field("image", *o.ImagePath)
	}

	if o.Status == history.StatusOK {
		out.field("status", o.StatusCode)
		out.line("")
		return out.document(o.Response)
	}

	out.field("error", o.Error.Kind)
	out.field("message", o.Error.Message)
	if o.Error.Status != 0 {
		out.field("status", o.Error.Status)
	}
	keys := lo.Keys(o.Error.Headers)
	slices.Sort(keys)
	for _, k := range keys {
		out.line("  %s %s", out.dim(k+":"), o.Error.Headers[k])
	}
	if o.Error.Body != "" {
		out.line("")
		out.line("%s", o.Error.Body)
	}
	return nil
}

