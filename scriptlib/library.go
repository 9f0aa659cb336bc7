// Package scriptlib is the registry a host game engine uses to manage
// many pieces' scripts at once: parsing, content-addressed digesting,
// "did you mean" suggestions for typo'd piece kinds, and directory
// hot-reload. The interpreter itself knows nothing about this package;
// it consumes one *token.Program per Execute call regardless of where
// that program came from.
package scriptlib

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"

	"github.com/chesstack-dsl/chesstack/parser"
	"github.com/chesstack-dsl/chesstack/token"
)

type entry struct {
	program *token.Program
	source  string
	digest  string
}

// Library is a concurrency-safe piece-kind-name -> parsed program
// registry. The zero value is not usable; construct with NewLibrary.
type Library struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	scopeKey []byte
}

// NewLibrary creates an empty Library with a fresh random scope key,
// used to derive ScopedID values that are stable within this Library
// instance but unlinkable to any other Library's IDs for the same
// script content.
func NewLibrary() (*Library, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("scriptlib: generating scope key: %w", err)
	}
	return &Library{entries: make(map[string]*entry), scopeKey: key}, nil
}

// Register parses source and, on success, stores it under name
// alongside its digest. On parse failure the returned error is a
// *parser.ParseError and any prior registration for name is left
// untouched.
func (l *Library) Register(name, source string) error {
	prog, err := parser.Parse(source)
	if err != nil {
		return err
	}

	digest, err := digestProgram(prog)
	if err != nil {
		return err
	}

	l.mu.Lock()
	l.entries[name] = &entry{program: prog, source: source, digest: digest}
	l.mu.Unlock()
	return nil
}

// Lookup returns the parsed program registered under name.
func (l *Library) Lookup(name string) (*token.Program, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[name]
	if !ok {
		return nil, false
	}
	return e.program, true
}

// Digest returns the hex SHA-256 digest of name's canonical token
// encoding, used to detect whether a reload actually changed anything.
func (l *Library) Digest(name string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	e, ok := l.entries[name]
	if !ok {
		return "", false
	}
	return e.digest, true
}

// ScopedID derives a registry-scoped identifier for name's current
// script from its raw digest via HKDF-SHA3-256. Two Library instances
// holding the exact same script content produce different ScopedIDs
// because each Library's scope key is independently random; the same
// Library produces the same ScopedID every time for unchanged content.
func (l *Library) ScopedID(name string) (string, bool) {
	l.mu.RLock()
	digest, ok := l.entries[name]
	scopeKey := l.scopeKey
	l.mu.RUnlock()
	if !ok {
		return "", false
	}

	info := []byte("chesstack/scriptlib/instance/v1")
	kdf := hkdf.New(sha3.New256, []byte(digest.digest), scopeKey, info)

	id := make([]byte, 16)
	if _, err := kdf.Read(id); err != nil {
		return "", false
	}
	return hex.EncodeToString(id), true
}

// Names returns every currently registered piece-kind name, sorted.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sortedNames(l.entries)
}

// Suggest returns the registered name with the smallest
// case-insensitive Levenshtein distance to unknown (ties go to the
// alphabetically first name), for building "unknown piece kind %q, did
// you mean %q?" error text. ok is false when the registry is empty.
func (l *Library) Suggest(unknown string) (best string, ok bool) {
	l.mu.RLock()
	candidates := sortedNames(l.entries)
	l.mu.RUnlock()

	if len(candidates) == 0 {
		return "", false
	}
	bestDist := -1
	for _, name := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(unknown), strings.ToLower(name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	return best, true
}
