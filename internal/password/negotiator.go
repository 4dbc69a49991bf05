// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package password

import (
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"
)

// Decision is the user's choice at a password prompt.
type Decision int

const (
	// DecisionPassword means the user typed a password.
	DecisionPassword Decision = iota
	// DecisionSkip means the user chose to skip this archive.
	DecisionSkip
	// DecisionAbort means the user chose to stop the whole batch.
	DecisionAbort
)

// Answer is one response from an Asker.
type Answer struct {
	Decision Decision
	Password string
}

// Asker collects a password decision from the user. The console and the
// unattended mode each provide one.
type Asker interface {
	// Ask prompts for the archive named archive. attempt counts password
	// attempts already made for it, starting at 1 for the first prompt.
	Ask(archive string, attempt int) (Answer, error)
}

// Outcome is the terminal state of a negotiation.
type Outcome int

const (
	Resolved Outcome = iota
	Skipped
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Skipped:
		return "skipped"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Resolution is the result of Negotiate.
type Resolution struct {
	Outcome  Outcome
	Password string

	// FromCache is true when the password came from the cache without a
	// prompt.
	FromCache bool
}

// Negotiator obtains passwords for archives, consulting the cache before
// prompting. It is invoked once per failed extraction attempt.
type Negotiator struct {
	cache *Cache
	asker Asker
	w     io.Writer
	log   *zap.Logger
}

// NewNegotiator returns a negotiator that prompts through asker and writes
// rejection notices to w.
func NewNegotiator(cache *Cache, asker Asker, w io.Writer, log *zap.Logger) *Negotiator {
	return &Negotiator{cache: cache, asker: asker, w: w, log: log}
}

// Cache returns the cache the negotiator reads and fills.
func (n *Negotiator) Cache() *Cache { return n.cache }

// Negotiate returns a password for the archive at path. A cached password
// resolves immediately. Otherwise the asker is prompted until it returns a
// non-empty password, a skip, or an abort. A submitted password is cached
// before it is returned. An error from the asker is returned as is.
func (n *Negotiator) Negotiate(path string, attempt int) (Resolution, error) {
	if pw, ok := n.cache.Get(path); ok {
		n.log.Debug("using cached password", zap.String("archive", path))
		return Resolution{Outcome: Resolved, Password: pw, FromCache: true}, nil
	}

	name := filepath.Base(path)
	for {
		ans, err := n.asker.Ask(name, attempt)
		if err != nil {
			return Resolution{}, fmt.Errorf("prompting for %s: %w", name, err)
		}

		switch ans.Decision {
		case DecisionSkip:
			return Resolution{Outcome: Skipped}, nil
		case DecisionAbort:
			return Resolution{Outcome: Aborted}, nil
		case DecisionPassword:
			if ans.Password == "" {
				fmt.Fprintln(n.w, "Password cannot be empty.")
				continue
			}
			n.cache.Put(path, ans.Password)
			return Resolution{Outcome: Resolved, Password: ans.Password}, nil
		default:
			fmt.Fprintf(n.w, "Unrecognized choice %d.\n", ans.Decision)
		}
	}
}

// Unattended answers every prompt with skip. It is used when no user is
// present to type passwords.
type Unattended struct{}

func (Unattended) Ask(string, int) (Answer, error) {
	return Answer{Decision: DecisionSkip}, nil
}
