package tester

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/promptbench/internal/history"
	"github.com/JaimeStill/promptbench/pkg/dispatch"
)

func (t *tester) Submit(ctx context.Context, sub Submission) (*Outcome, error) {
	method, err := ParseMethod(sub.Method)
	if err != nil {
		return nil, err
	}
	kind, err := ParseDataType(sub.DataType)
	if err != nil {
		return nil, err
	}

	if sub.Record && sub.PromptID != nil {
		if _, err := t.prompts.Find(ctx, *sub.PromptID); err != nil {
			return nil, err
		}
	}

	if sub.BaseURL == "" {
		sub.BaseURL = t.defaults.BaseURL
	}
	if sub.Path == "" {
		sub.Path = t.defaults.Path
	}

	outcome := &Outcome{URL: sub.URL(), Method: method}

	resp, err := t.dispatcher.Dispatch(ctx, dispatch.Request{
		URL:    outcome.URL,
		Method: method,
		Payload: dispatch.Payload{
			Kind:   kind,
			Prompt: sub.Prompt,
			Text:   sub.Text,
			Data:   sub.JSON,
			Image:  imageFor(kind, sub.Image),
		},
	})
	if err != nil {
		outcome.Status = history.StatusFail
		outcome.Error = viewError(err)
		outcome.StatusCode = outcome.Error.Status
		t.logger.Warn("submission failed", "url", outcome.URL, "kind", outcome.Error.Kind, "error", err)
	} else {
		outcome.Status = history.StatusOK
		outcome.StatusCode = resp.StatusCode
		outcome.Response = resp.Data
		t.logger.Info("submission succeeded", "url", outcome.URL, "status", resp.StatusCode)
	}

	if sub.Record {
		if err := t.record(ctx, sub, kind, outcome); err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

func (t *tester) record(ctx context.Context, sub Submission, kind dispatch.Kind, outcome *Outcome) error {
	if kind == dispatch.KindImage && sub.Image != nil {
		key := imageKey(sub.Image)
		err := t.attachments.Upload(ctx, key, bytes.NewReader(sub.Image.Data), sub.Image.ContentType)
		if err != nil {
			return fmt.Errorf("archive image: %w", err)
		}
		outcome.ImagePath = &key
	}

	response := outcome.Response
	if outcome.Error != nil {
		data, err := json.Marshal(map[string]any{"error": outcome.Error})
		if err != nil {
			return fmt.Errorf("encode error response: %w", err)
		}
		response = data
	}

	cmd := history.SaveCommand{
		ImagePath: outcome.ImagePath,
		Response:  response,
		Status:    outcome.Status,
	}
	if sub.Prompt != "" {
		cmd.Prompt = &sub.Prompt
	}

	entry, err := t.history.Save(ctx, cmd)
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	outcome.HistoryID = &entry.ID

	if sub.PromptID != nil {
		if _, err := t.prompts.AttachHistory(ctx, *sub.PromptID, entry.ID); err != nil {
			return fmt.Errorf("link history to prompt: %w", err)
		}
	}
	return nil
}

func imageFor(kind dispatch.Kind, f *dispatch.File) *dispatch.File {
	if kind != dispatch.KindImage {
		return nil
	}
	return f
}

func imageKey(f *dispatch.File) string {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if ext == "" {
		if exts, err := mime.ExtensionsByType(f.ContentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return "images/" + uuid.NewString() + ext
}
