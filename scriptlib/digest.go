package scriptlib

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/fxamacker/cbor/v2"

	"github.com/chesstack-dsl/chesstack/token"
)

// canonicalToken is the CBOR wire shape for one token.Token. Fields are
// listed explicitly, in a fixed order, so two runs of the same source
// through the same parser produce byte-identical CBOR regardless of
// Go's struct layout: build a canonical form, then hash that form,
// never the live struct graph directly.
type canonicalToken struct {
	Kind int32
	DX   int32
	DY   int32
	N    int32
	Name string
	Key  string
}

// canonicalProgram is the digested form of a token.Program: the token
// sequence only, deliberately omitting raw source text, so two scripts
// that differ only in whitespace or comments digest identically.
type canonicalProgram struct {
	Version uint8
	Tokens  []canonicalToken
}

func canonicalize(p *token.Program) canonicalProgram {
	toks := make([]canonicalToken, len(p.Tokens))
	for i, t := range p.Tokens {
		toks[i] = canonicalToken{
			Kind: int32(t.Kind),
			DX:   t.DX,
			DY:   t.DY,
			N:    t.N,
			Name: t.Name,
			Key:  t.Key,
		}
	}
	return canonicalProgram{Version: 1, Tokens: toks}
}

// digestProgram computes a stable hex digest for a parsed program: CBOR
// canonical encoding (deterministic map key ordering, shortest-form
// integers) followed by SHA-256.
func digestProgram(p *token.Program) (string, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return "", fmt.Errorf("scriptlib: building cbor encoder: %w", err)
	}

	data, err := encMode.Marshal(canonicalize(p))
	if err != nil {
		return "", fmt.Errorf("scriptlib: encoding program: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// sortedNames returns m's keys sorted, used anywhere registry contents
// need a deterministic iteration order (Names, and Suggest's candidate
// list).
func sortedNames(m map[string]*entry) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
