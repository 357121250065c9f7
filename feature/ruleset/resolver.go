package ruleset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"ruleset-combiner/core/uniques"
)

// Resolution is the resolver built from configuration, plus the memo of interactive
// answers so they can be saved back to the decisions file.
type Resolution struct {
	Resolver uniques.Resolver
	Memo     *uniques.Memo
}

// NewResolver builds the unknown-ability resolver for a mode.
//
// Saved decisions, when a decisions file exists, are consulted first in every mode;
// the mode only decides texts without a saved answer. Interactive answers are memoized.
func NewResolver(cfg Config, known uniques.List, in io.Reader, out io.Writer) (*Resolution, error) {
	decisions := map[string]bool{}
	if cfg.DecisionsFile != "" {
		loaded, err := uniques.LoadDecisions(cfg.DecisionsFile)
		switch {
		case err == nil:
			decisions = loaded
		case errors.Is(err, fs.ErrNotExist) && cfg.Resolver != ResolverLookup:
			// first run, nothing saved yet
		default:
			return nil, err
		}
	}

	var fallback uniques.Resolver
	var memo *uniques.Memo
	switch cfg.Resolver {
	case ResolverPrompt, "":
		memo = uniques.NewMemo(uniques.NewPrompt(in, out, known))
		fallback = memo
	case ResolverReject, ResolverLookup:
		fallback = uniques.RejectAll
	case ResolverAccept:
		fallback = uniques.AcceptAll
	default:
		return nil, fmt.Errorf("unknown resolver mode %q", cfg.Resolver)
	}

	if len(decisions) == 0 {
		return &Resolution{Resolver: fallback, Memo: memo}, nil
	}
	return &Resolution{Resolver: uniques.NewLookup(decisions, fallback), Memo: memo}, nil
}

// Save merges the interactive answers into the decisions file, when one is configured.
func (r *Resolution) Save(path string) error {
	if path == "" || r.Memo == nil {
		return nil
	}
	answers := r.Memo.Decisions()
	if len(answers) == 0 {
		return nil
	}

	decisions, err := uniques.LoadDecisions(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		decisions = map[string]bool{}
	}
	for text, keep := range answers {
		decisions[text] = keep
	}
	return uniques.SaveDecisions(path, decisions)
}
