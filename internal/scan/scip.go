package scan

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	scippb "github.com/sourcegraph/scip/bindings/go/scip"
	"google.golang.org/protobuf/proto"

	gerrors "planguard/internal/errors"
)

// ImportSCIP converts a SCIP protobuf index into an element snapshot.
//
// Definitions become elements; reference occurrences become dependency
// edges attributed to the most recent enclosing definition in document
// order (scip-go does not reliably populate EnclosingRange, so positional
// attribution is the best available signal). CalledBy edges are the
// reverse of the dependency edges. The conversion is best-effort:
// occurrences that cannot be attributed are skipped.
func ImportSCIP(path string, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.New(gerrors.SnapshotMissing,
				fmt.Sprintf("SCIP index not found at %s", path), err)
		}
		return nil, gerrors.New(gerrors.InternalError,
			fmt.Sprintf("failed to read SCIP index %s", path), err)
	}

	var idx scippb.Index
	if err := proto.Unmarshal(data, &idx); err != nil {
		return nil, gerrors.New(gerrors.MalformedInput,
			fmt.Sprintf("failed to parse SCIP index %s", path), err)
	}

	// Symbol metadata across all documents
	kinds := make(map[string]ElementKind)
	names := make(map[string]string)
	for _, doc := range idx.Documents {
		for _, info := range doc.Symbols {
			kinds[info.Symbol] = kindFromSCIP(info)
			if info.DisplayName != "" {
				names[info.Symbol] = info.DisplayName
			}
		}
	}

	type node struct {
		el   *Element
		deps map[string]bool
		by   map[string]bool
	}
	nodes := make(map[string]*node)

	ensure := func(symbol, file string, line int) *node {
		name := names[symbol]
		if name == "" {
			name = symbolName(symbol)
		}
		n, ok := nodes[name]
		if !ok {
			kind := kinds[symbol]
			if kind == "" {
				kind = kindFromDescriptor(symbol)
			}
			n = &node{
				el:   &Element{Name: name, File: file, Line: line, Kind: kind},
				deps: make(map[string]bool),
				by:   make(map[string]bool),
			}
			nodes[name] = n
		}
		return n
	}

	// First pass: definitions become elements
	for _, doc := range idx.Documents {
		for _, occ := range doc.Occurrences {
			if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) == 0 {
				continue
			}
			if len(occ.Range) == 0 || strings.HasPrefix(occ.Symbol, "local ") {
				continue
			}
			ensure(occ.Symbol, doc.RelativePath, int(occ.Range[0])+1)
		}
	}

	// Second pass: references become edges, attributed to the nearest
	// preceding definition in the same document.
	for _, doc := range idx.Documents {
		var container string
		for _, occ := range doc.Occurrences {
			if strings.HasPrefix(occ.Symbol, "local ") {
				continue
			}
			if occ.SymbolRoles&int32(scippb.SymbolRole_Definition) != 0 {
				container = occ.Symbol
				continue
			}
			if container == "" || container == occ.Symbol {
				continue
			}
			from := ensure(container, doc.RelativePath, 0)
			toName := names[occ.Symbol]
			if toName == "" {
				toName = symbolName(occ.Symbol)
			}
			if toName == "" || toName == from.el.Name {
				continue
			}
			from.deps[toName] = true
			if to, ok := nodes[toName]; ok {
				to.by[from.el.Name] = true
			}
		}
	}

	elements := make([]Element, 0, len(nodes))
	for _, n := range nodes {
		n.el.Dependencies = sortedKeys(n.deps)
		n.el.CalledBy = sortedKeys(n.by)
		elements = append(elements, *n.el)
	}
	sort.Slice(elements, func(i, j int) bool { return elements[i].Name < elements[j].Name })

	logger.Info("SCIP index imported",
		"documents", len(idx.Documents), "elements", len(elements))

	tool := "scip"
	if idx.Metadata != nil && idx.Metadata.ToolInfo != nil {
		tool = idx.Metadata.ToolInfo.Name
	}
	return &Snapshot{Tool: tool, Elements: elements}, nil
}

// kindFromSCIP maps SCIP symbol kinds onto element kinds.
func kindFromSCIP(info *scippb.SymbolInformation) ElementKind {
	switch info.Kind {
	case scippb.SymbolInformation_Class:
		return KindClass
	case scippb.SymbolInformation_Interface:
		return KindInterface
	case scippb.SymbolInformation_Function:
		return KindFunction
	case scippb.SymbolInformation_Method:
		return KindMethod
	case scippb.SymbolInformation_Type, scippb.SymbolInformation_Struct, scippb.SymbolInformation_Enum:
		return KindType
	case scippb.SymbolInformation_Variable, scippb.SymbolInformation_Constant:
		return KindVariable
	default:
		return kindFromDescriptor(info.Symbol)
	}
}

// kindFromDescriptor guesses a kind from the trailing SCIP descriptor.
func kindFromDescriptor(symbol string) ElementKind {
	switch {
	case strings.HasSuffix(symbol, ")."):
		return KindFunction
	case strings.HasSuffix(symbol, "#"):
		return KindClass
	default:
		return KindType
	}
}

// symbolName extracts a readable name from a SCIP symbol string by taking
// the final descriptor and stripping descriptor punctuation.
func symbolName(symbol string) string {
	s := symbol
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimSuffix(s, "()")
	s = strings.TrimSuffix(s, "#")
	// Method descriptors look like Type#method; keep both parts readable
	s = strings.ReplaceAll(s, "#", ".")
	s = strings.Trim(s, "`")
	return s
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
