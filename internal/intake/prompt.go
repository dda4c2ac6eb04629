package intake

import (
	"errors"
	"io"

	"github.com/manifoldco/promptui"
)

const maxSelectSize = 10

// PromptAsker asks questions on a terminal.
type PromptAsker struct {
	Stdin  io.ReadCloser
	Stdout io.WriteCloser
}

func NewPromptAsker() *PromptAsker {
	return &PromptAsker{}
}

func (p *PromptAsker) Ask(f Field) (string, error) {
	prompt := promptui.Prompt{
		Label:    f.Label,
		Validate: f.check,
		Stdin:    p.Stdin,
		Stdout:   p.Stdout,
	}

	answer, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return answer, nil
}

func (p *PromptAsker) Choose(label string, options []string) (string, error) {
	size := len(options)
	if size > maxSelectSize {
		size = maxSelectSize
	}

	sel := promptui.Select{
		Label:  label,
		Items:  options,
		Size:   size,
		Stdin:  p.Stdin,
		Stdout: p.Stdout,
	}

	_, choice, err := sel.Run()
	if err != nil {
		return "", promptError(err)
	}
	return choice, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, promptui.ErrAbort) {
		return ErrAborted
	}
	return err
}
