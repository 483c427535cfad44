package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"strings"
)

// Kind selects how a payload is attached to a request.
type Kind string

const (
	KindNone  Kind = "none"
	KindText  Kind = "text"
	KindJSON  Kind = "json"
	KindImage Kind = "image"
)

// File is an in-memory upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Payload is the prompt plus at most one typed attachment.
type Payload struct {
	Kind   Kind
	Prompt string
	Text   string
	Data   json.RawMessage
	Image  *File
}

type promptBody struct {
	Prompt string `json:"prompt"`
}

type textBody struct {
	Prompt string `json:"prompt"`
	Text   string `json:"text"`
}

type dataBody struct {
	Prompt string          `json:"prompt"`
	Data   json.RawMessage `json:"data"`
}

func (p Payload) applyQuery(q url.Values) error {
	if p.Prompt != "" {
		q.Set("prompt", p.Prompt)
	}

	switch p.Kind {
	case KindText:
		q.Set("text", p.Text)
	case KindJSON:
		return mergeObject(q, p.Data)
	}
	return nil
}

// mergeObject flattens one level of a JSON object into query values.
func mergeObject(q url.Values, data json.RawMessage) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return errors.New("query payload must be a JSON object")
	}
	if members == nil {
		return errors.New("query payload must be a JSON object")
	}

	for key, raw := range members {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			q.Del(key)
			for _, item := range items {
				if v, ok := scalar(item); ok {
					q.Add(key, v)
				}
			}
			continue
		}
		if v, ok := scalar(raw); ok {
			q.Set(key, v)
		}
	}
	return nil
}

// scalar renders a JSON value for a query string. Strings are unquoted and
// null is dropped; everything else keeps its JSON text.
func scalar(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s, true
	}
	return string(trimmed), true
}

func (p Payload) writeJSON(w io.Writer) error {
	var body any
	switch p.Kind {
	case KindText:
		body = textBody{Prompt: p.Prompt, Text: p.Text}
	case KindJSON:
		data := p.Data
		if len(bytes.TrimSpace(data)) == 0 {
			data = json.RawMessage("null")
		}
		if !json.Valid(data) {
			return errors.New("data is not valid JSON")
		}
		body = dataBody{Prompt: p.Prompt, Data: data}
	default:
		body = promptBody{Prompt: p.Prompt}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(body)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// writeMultipart encodes the prompt as a form field and the image, when
// attached, as the "image" file part.
func (p Payload) writeMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	if p.Image != nil {
		name := p.Image.Name
		if name == "" {
			name = "image"
		}
		contentType := p.Image.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(name)))
		h.Set("Content-Type", contentType)

		part, err := mw.CreatePart(h)
		if err != nil {
			return "", err
		}
		if _, err := part.Write(p.Image.Data); err != nil {
			return "", err
		}
	}

	if err := mw.WriteField("prompt", p.Prompt); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}
