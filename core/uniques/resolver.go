package uniques

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Resolver decides whether an ability string missing from the known list is kept.
// Implementations may block (e.g. waiting for an operator); callers in latency-sensitive
// contexts should supply a non-blocking one such as RejectAll or a Lookup.
type Resolver interface {
	Resolve(ctx context.Context, text string) (bool, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, text string) (bool, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(ctx context.Context, text string) (bool, error) {
	return f(ctx, text)
}

var (
	// RejectAll drops every unknown ability.
	RejectAll Resolver = ResolverFunc(func(context.Context, string) (bool, error) { return false, nil })
	// AcceptAll keeps every unknown ability.
	AcceptAll Resolver = ResolverFunc(func(context.Context, string) (bool, error) { return true, nil })
)

// Lookup answers from precomputed decisions, matching the literal text first and then
// the normalized form. Texts without a decision go to the fallback.
type Lookup struct {
	decisions map[string]bool
	fallback  Resolver
}

// NewLookup creates a Lookup. A nil fallback rejects.
func NewLookup(decisions map[string]bool, fallback Resolver) *Lookup {
	if fallback == nil {
		fallback = RejectAll
	}
	byKey := make(map[string]bool, len(decisions)*2)
	for text, keep := range decisions {
		byKey[string(Normalize(text))] = keep
	}
	for text, keep := range decisions {
		byKey[text] = keep
	}
	return &Lookup{decisions: byKey, fallback: fallback}
}

// Resolve implements Resolver.
func (l *Lookup) Resolve(ctx context.Context, text string) (bool, error) {
	if keep, ok := l.decisions[text]; ok {
		return keep, nil
	}
	if keep, ok := l.decisions[string(Normalize(text))]; ok {
		return keep, nil
	}
	return l.fallback.Resolve(ctx, text)
}

// decisionsFile is the YAML layout of a decisions file:
//
//	keep:
//	  - "[+1] Movement"
//	drop:
//	  - "Cannot be purchased"
type decisionsFile struct {
	Keep []string `yaml:"keep"`
	Drop []string `yaml:"drop"`
}

// LoadDecisions reads a YAML decisions file. Drop wins when a text is listed twice.
func LoadDecisions(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading decisions file: %w", err)
	}
	var f decisionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing decisions file %s: %w", path, err)
	}
	decisions := make(map[string]bool, len(f.Keep)+len(f.Drop))
	for _, s := range f.Keep {
		decisions[s] = true
	}
	for _, s := range f.Drop {
		decisions[s] = false
	}
	return decisions, nil
}

// SaveDecisions writes decisions in the layout LoadDecisions reads.
func SaveDecisions(path string, decisions map[string]bool) error {
	var f decisionsFile
	for text, keep := range decisions {
		if keep {
			f.Keep = append(f.Keep, text)
		} else {
			f.Drop = append(f.Drop, text)
		}
	}
	sort.Strings(f.Keep)
	sort.Strings(f.Drop)

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("encoding decisions: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing decisions file: %w", err)
	}
	return nil
}

// ErrNoAnswer is returned by Prompt when the input ends before a Y/n answer.
var ErrNoAnswer = errors.New("no answer for unknown ability")

// Prompt asks an operator on in/out, repeating until the answer is y or n.
type Prompt struct {
	mu    sync.Mutex
	in    *bufio.Reader
	out   io.Writer
	known List
}

// NewPrompt creates a Prompt. known is used for "did you mean" hints and may be nil.
func NewPrompt(in io.Reader, out io.Writer, known List) *Prompt {
	return &Prompt{in: bufio.NewReader(in), out: out, known: known}
}

// Resolve implements Resolver.
func (p *Prompt) Resolve(ctx context.Context, text string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if hint, ok := p.known.Suggest(text); ok {
		fmt.Fprintf(p.out, "closest known ability: %q\n", hint)
	}
	for {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		fmt.Fprintf(p.out, "%q is not in the uniques list, keep? \"Y/n\": ", text)
		line, err := p.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, fmt.Errorf("%w: %q", ErrNoAnswer, text)
			}
			return false, err
		}
	}
}

// Memo remembers each decision so a text is resolved at most once.
type Memo struct {
	mu    sync.Mutex
	inner Resolver
	seen  map[string]bool
}

// NewMemo wraps a resolver.
func NewMemo(inner Resolver) *Memo {
	return &Memo{inner: inner, seen: make(map[string]bool)}
}

// Resolve implements Resolver.
func (m *Memo) Resolve(ctx context.Context, text string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if keep, ok := m.seen[text]; ok {
		return keep, nil
	}
	keep, err := m.inner.Resolve(ctx, text)
	if err != nil {
		return false, err
	}
	m.seen[text] = keep
	return keep, nil
}

// Decisions returns a copy of every decision made so far.
func (m *Memo) Decisions() map[string]bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]bool, len(m.seen))
	for k, v := range m.seen {
		out[k] = v
	}
	return out
}

// Recorder rejects every unknown ability and remembers it, in first-seen order.
type Recorder struct {
	mu    sync.Mutex
	texts []string
	seen  map[string]struct{}
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{seen: make(map[string]struct{})}
}

// Resolve implements Resolver.
func (r *Recorder) Resolve(_ context.Context, text string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[text]; !ok {
		r.seen[text] = struct{}{}
		r.texts = append(r.texts, text)
	}
	return false, nil
}

// Texts returns the recorded texts.
func (r *Recorder) Texts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.texts))
	copy(out, r.texts)
	return out
}
