// Package ui provides the interactive prompts used by pmbench
package ui

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a prompt is requested without a terminal
var ErrNotInteractive = errors.New("interactive selection requires a terminal")

// askFunc matches survey.AskOne
type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// InteractiveUI asks the user questions on the terminal
type InteractiveUI struct {
	ask        askFunc
	isTerminal func() bool
}

// NewInteractiveUI creates a new interactive UI helper
func NewInteractiveUI() *InteractiveUI {
	return &InteractiveUI{
		ask: survey.AskOne,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// SelectPackages lets the user choose which packages to benchmark. Every
// package starts selected and the chosen ones keep their original order.
func (ui *InteractiveUI) SelectPackages(packages []string) ([]string, error) {
	if !ui.isTerminal() {
		return nil, ErrNotInteractive
	}
	if len(packages) == 0 {
		return nil, fmt.Errorf("no packages to select from")
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message: "Select packages to benchmark:",
		Options: packages,
		Default: packages,
	}

	if err := ui.ask(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}

	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}

	ordered := make([]string, 0, len(selected))
	for _, pkg := range packages {
		if chosen[pkg] {
			ordered = append(ordered, pkg)
			delete(chosen, pkg)
		}
	}
	if len(ordered) == 0 {
		return nil, fmt.Errorf("no packages selected")
	}
	return ordered, nil
}
