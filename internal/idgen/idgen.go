// Package idgen generates the per-run salt and per-descriptor ids Design
// Note "Arenas and ids" and "Custom-property names" call for: a value
// stable enough to reuse as both an attribute-value word and a
// custom-property name suffix, unique within one transpilation run.
package idgen

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Generator produces a per-run Salt (used to namespace internal
// custom-property names so two polyfill instances never collide) and a
// fresh opaque id on every NextID call.
type Generator interface {
	Salt() string
	NextID() string
}

// Counter is a deterministic, golden-file-friendly generator: the default
// per Design Note "Arenas and ids" ("a deterministic counter is preferred
// for golden-file testing").
type Counter struct {
	salt string
	n    int
}

// NewCounter returns a Counter generator with a fixed, deterministic salt.
func NewCounter() *Counter {
	return &Counter{salt: "cq0"}
}

// NewCounterWithSalt is the same, with an explicit salt — useful when a
// caller wants deterministic ids that don't collide with another fixed
// generator in the same test.
func NewCounterWithSalt(salt string) *Counter {
	return &Counter{salt: salt}
}

func (c *Counter) Salt() string { return c.salt }

func (c *Counter) NextID() string {
	c.n++
	return "cq-" + c.salt + "-" + strconv.FormatInt(int64(c.n), 36)
}

// Random is the alternative Design Note "Arenas and ids" calls out
// explicitly ("a random seed at construction time is acceptable"), backed
// by github.com/google/uuid.
type Random struct {
	salt string
}

// NewRandom returns a Random generator with an 8-character salt drawn from
// a fresh UUID.
func NewRandom() *Random {
	return &Random{salt: shortUUID()}
}

func (r *Random) Salt() string { return r.salt }

func (r *Random) NextID() string {
	return "cq-" + r.salt + "-" + shortUUID()
}

func shortUUID() string {
	s := strings.ReplaceAll(uuid.NewString(), "-", "")
	return s[:8]
}
