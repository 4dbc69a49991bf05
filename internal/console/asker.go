// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package console

import (
	"fmt"

	"github.com/pdiddy/batch-extract/internal/password"
)

// PasswordAsker prompts for archive passwords on the console.
type PasswordAsker struct {
	c *Console
}

// NewPasswordAsker returns an asker bound to c.
func NewPasswordAsker(c *Console) *PasswordAsker {
	return &PasswordAsker{c: c}
}

// Ask offers to enter a password, skip the archive, or quit the batch.
func (a *PasswordAsker) Ask(archive string, attempt int) (password.Answer, error) {
	if attempt > 1 {
		fmt.Fprintf(a.c.out, "\n%s: wrong password or damaged data (attempt %d).\n", archive, attempt)
	} else {
		fmt.Fprintf(a.c.out, "\n%s is password protected.\n", archive)
	}

	choice, err := a.c.Choose("Enter a password? [Y]es / [N]o, skip this archive / [Q]uit batch: ", yesNoQuit)
	if err != nil {
		return password.Answer{}, err
	}
	switch choice {
	case "n":
		return password.Answer{Decision: password.DecisionSkip}, nil
	case "q":
		return password.Answer{Decision: password.DecisionAbort}, nil
	}

	pw, err := a.c.ReadPassword("Password: ")
	if err != nil {
		return password.Answer{}, err
	}
	return password.Answer{Decision: password.DecisionPassword, Password: pw}, nil
}
