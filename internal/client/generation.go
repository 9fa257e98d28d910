package client

import (
	"sync"

	"github.com/google/uuid"
)

// Token identifies one issued request.
type Token struct {
	Seq uint64
	ID  string
}

// Generations hands out increasing tokens so that only the response to the
// most recently issued request is applied.
type Generations struct {
	mu  sync.Mutex
	seq uint64
}

// Next issues a new token, superseding all earlier ones.
func (g *Generations) Next() Token {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return Token{Seq: g.seq, ID: uuid.NewString()}
}

// IsCurrent reports whether t is the latest issued token.
func (g *Generations) IsCurrent(t Token) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return t.Seq == g.seq
}
