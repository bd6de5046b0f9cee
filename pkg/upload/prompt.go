package upload

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// PromptPicker asks the user in the terminal which candidate files to
// select.
type PromptPicker struct {
	// Source supplies the candidates.
	Source Lister

	// Message is shown above the options.
	Message string

	// Ask runs a prompt. Defaults to survey.AskOne.
	Ask func(p survey.Prompt, response any) error

	// MaxSize rejects chosen files larger than this many bytes. Zero uses
	// the source's limit when it implements SizeLimiter.
	MaxSize int64
}

// NewPromptPicker creates a PromptPicker over source.
func NewPromptPicker(source Lister) *PromptPicker {
	return &PromptPicker{Source: source}
}

// Pick implements Picker. Interrupting the prompt or selecting nothing
// returns ErrCanceled.
func (p *PromptPicker) Pick(ctx context.Context, req PickRequest) ([]*File, error) {
	candidates, err := p.Source.List(ctx)
	if err != nil {
		return nil, err
	}

	var files []*File
	for _, f := range candidates {
		if Accepts(req.Accept, f) {
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return nil, ErrCanceled
	}

	labels := make([]string, len(files))
	byLabel := make(map[string]*File, len(files))
	for i, f := range files {
		labels[i] = fmt.Sprintf("%d. %s (%s)", i+1, f.Filename, humanSize(f.Size))
		byLabel[labels[i]] = f
	}

	ask := p.Ask
	if ask == nil {
		ask = func(pr survey.Prompt, response any) error {
			return survey.AskOne(pr, response)
		}
	}

	var chosen []string
	if req.Multiple {
		err = ask(&survey.MultiSelect{
			Message: p.message("Select files to upload:"),
			Options: labels,
		}, &chosen)
	} else {
		var one string
		err = ask(&survey.Select{
			Message: p.message("Select a file to upload:"),
			Options: labels,
		}, &one)
		if one != "" {
			chosen = []string{one}
		}
	}
	if err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrCanceled
		}
		return nil, err
	}

	var out []*File
	for _, label := range chosen {
		if f, ok := byLabel[label]; ok {
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, ErrCanceled
	}
	if err := checkSize(out, p.maxSize()); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *PromptPicker) maxSize() int64 {
	if p.MaxSize > 0 {
		return p.MaxSize
	}
	if l, ok := p.Source.(SizeLimiter); ok {
		return l.MaxFileSize()
	}
	return 0
}

func (p *PromptPicker) message(def string) string {
	if p.Message != "" {
		return p.Message
	}
	return def
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
