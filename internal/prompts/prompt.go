// Package prompts stores reusable prompt texts. Prompts are deduplicated by
// content hash and auto-named "Prompt #N".
package prompts

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/JaimeStill/promptbench/pkg/isotime"
)

// Prompt is a saved prompt text and the history entries produced with it.
type Prompt struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Content        string       `json:"content"`
	CreatedAt      isotime.Time `json:"created_at"`
	RelatedHistory []uuid.UUID  `json:"related_history"`
}

// SaveCommand carries the content of a prompt to save.
type SaveCommand struct {
	Content string `json:"content"`
}

// AttachCommand links a history entry to a prompt.
type AttachCommand struct {
	HistoryID uuid.UUID `json:"history_id"`
}

var namePattern = regexp.MustCompile(`^Prompt #(\d+)$`)

// Hash returns the hex MD5 digest of content.
func Hash(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// NextNumber returns one more than the largest N among names of the form
// "Prompt #N". Other names, and suffixes too large to increment, count as 0.
func NextNumber(existing []Prompt) int {
	highest := lo.Max(lo.Map(existing, func(p Prompt, _ int) int {
		m := namePattern.FindStringSubmatch(p.Name)
		if m == nil {
			return 0
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n == math.MaxInt {
			return 0
		}
		return n
	}))
	return highest + 1
}

// Exists reports whether a prompt with the same content hash is in existing.
func Exists(content string, existing []Prompt) bool {
	hash := Hash(content)
	return lo.ContainsBy(existing, func(p Prompt) bool {
		return Hash(p.Content) == hash
	})
}

// Compose builds the record that saving content into existing would append.
func Compose(content string, existing []Prompt) (Prompt, error) {
	if content == "" {
		return Prompt{}, ErrEmptyContent
	}
	if Exists(content, existing) {
		return Prompt{}, ErrDuplicate
	}

	n := NextNumber(existing)
	return Prompt{
		ID:             uuid.New(),
		Name:           fmt.Sprintf("Prompt #%d", n),
		Description:    fmt.Sprintf("Auto-saved prompt #%d", n),
		Content:        content,
		CreatedAt:      isotime.Now(),
		RelatedHistory: []uuid.UUID{},
	}, nil
}
