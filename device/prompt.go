package device

import "github.com/charmbracelet/huh"
import "github.com/pkg/errors"

// Chooser asks the user to pick one of options.
type Chooser func(options []string) (string, error)

// Interactive is a Chooser showing a terminal select.
func Interactive(options []string) (string, error) {
	var choice string
	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}
	err := huh.NewSelect[string]().
		Title("Which device to train on?").
		Options(opts...).
		Value(&choice).
		Run()
	if err != nil {
		return "", errors.Wrap(err, "device: prompt")
	}
	return choice, nil
}

// Prompt selects name, asking choose for it only when name is empty.
func Prompt(name string, choose Chooser) (Device, error) {
	if name == "" {
		if choose == nil {
			choose = Interactive
		}
		var err error
		if name, err = choose(Names); err != nil {
			return Device{}, err
		}
	}
	return Select(name)
}
