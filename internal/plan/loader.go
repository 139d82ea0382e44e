package plan

import (
	"encoding/hex"
	"fmt"
	"os"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"

	gerrors "planguard/internal/errors"
)

// Load reads a plan document from a YAML or JSON file. The returned plan
// carries the blake2b-256 content hash of the raw bytes for provenance.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.New(gerrors.NotFound,
				fmt.Sprintf("plan not found at %s", path), err)
		}
		return nil, gerrors.New(gerrors.InternalError,
			fmt.Sprintf("failed to read plan %s", path), err)
	}
	return Parse(data)
}

// Parse decodes plan bytes. YAML is a superset of JSON, so both formats
// go through the same decoder.
func Parse(data []byte) (*Plan, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, gerrors.New(gerrors.MalformedInput, "plan is not valid YAML or JSON", err)
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return nil, gerrors.Newf(gerrors.MalformedInput, "plan document is empty")
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, gerrors.Newf(gerrors.MalformedInput, "plan document must be a mapping")
	}

	var p Plan
	if err := doc.Decode(&p); err != nil {
		return nil, gerrors.New(gerrors.MalformedInput, "plan does not match the document shape", err)
	}

	// Record which top-level sections the document actually carried.
	p.present = make(map[string]bool)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		p.present[doc.Content[i].Value] = true
	}

	p.ContentHash = Hash(data)
	return &p, nil
}

// Hash returns the blake2b-256 hex digest of a plan document.
func Hash(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}
