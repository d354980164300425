// Package ident issues the node identifiers minted during conversion. A
// Generator never repeats a value for its lifetime; each converted row draws
// four identifiers (record, two facets, relationship).
package ident

import (
	"io"
	"math/rand"

	"github.com/google/uuid"
)

// Generator produces unique identifier suffixes. Construct one per run and
// pass it down; do not share a Generator across goroutines.
type Generator struct {
	src    io.Reader
	issued map[string]struct{}
}

// New returns a Generator backed by crypto/rand UUIDs.
func New() *Generator {
	return &Generator{issued: make(map[string]struct{})}
}

// NewDeterministic returns a Generator whose identifiers are a stable
// function of seed, for reproducible graphs and tests.
func NewDeterministic(seed int64) *Generator {
	return &Generator{
		src:    rand.New(rand.NewSource(seed)),
		issued: make(map[string]struct{}),
	}
}

// Next returns an identifier not issued before by this Generator.
func (g *Generator) Next() string {
	for {
		var (
			id  uuid.UUID
			err error
		)
		if g.src != nil {
			id, err = uuid.NewRandomFromReader(g.src)
		} else {
			id, err = uuid.NewRandom()
		}
		if err != nil {
			continue
		}
		s := id.String()
		if _, dup := g.issued[s]; dup {
			continue
		}
		g.issued[s] = struct{}{}
		return s
	}
}
