package driver

import (
	"encoding/hex"

	lru "github.com/hashicorp/golang-lru"
	"github.com/zeebo/blake3"

	"mlua/interpreter-go/pkg/ast"
)

// DefaultCacheSize bounds the number of parsed programs kept in memory.
const DefaultCacheSize = 128

// ProgramCache memoizes parsed programs keyed by a digest of their source
// text. Parsed programs are never mutated by execution, so entries are shared
// between runs.
type ProgramCache struct {
	entries *lru.Cache
}

// NewProgramCache returns a cache holding at most size programs. A
// non-positive size selects DefaultCacheSize.
func NewProgramCache(size int) (*ProgramCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	entries, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ProgramCache{entries: entries}, nil
}

// Digest returns the cache key for text.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *ProgramCache) Get(text string) (*ast.Program, bool) {
	if c == nil {
		return nil, false
	}
	value, ok := c.entries.Get(Digest(text))
	if !ok {
		return nil, false
	}
	program, ok := value.(*ast.Program)
	return program, ok
}

func (c *ProgramCache) Add(text string, program *ast.Program) {
	if c == nil || program == nil {
		return
	}
	c.entries.Add(Digest(text), program)
}

func (c *ProgramCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
