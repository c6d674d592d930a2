package interpro

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	gocache "github.com/patrickmn/go-cache"
)

// Tree maps every InterPro ID to its parent. IDs without an entry are
// their own roots.
type Tree map[string]string

// MostRemoteAncestor follows parent pointers from the given ID to a
// fixed point. The loader guarantees the tree is acyclic, so the walk
// always terminates.
func (t Tree) MostRemoteAncestor(id string) string {
	child := id
	parent, ok := t[child]
	for ok && parent != child {
		child = parent
		parent, ok = t[child]
	}
	return child
}

// IDMapper is a flat alias table from source-specific domain IDs to
// InterPro IDs.
type IDMapper map[string]string

// Get returns the InterPro ID for the key, or the key itself when no
// mapping exists.
func (m IDMapper) Get(key string) string {
	if mapped, ok := m[key]; ok {
		return mapped
	}
	return key
}

// InterPro bundles the parent-child tree and the alias table and
// resolves raw domain IDs to their most remote canonical ancestor.
// Resolution is memoized: over a full run the same handful of IDs is
// resolved once per input line otherwise.
type InterPro struct {
	Tree    Tree
	Mapping IDMapper

	cache *gocache.Cache
}

// NewInterPro creates an empty resolver; every ID resolves to itself.
func NewInterPro() *InterPro {
	return &InterPro{
		Tree:    make(Tree),
		Mapping: make(IDMapper),
		cache:   gocache.New(gocache.NoExpiration, 0),
	}
}

// Resolve implements model.Resolver. A recognized canonical ID wins and
// is walked up to its most remote ancestor; otherwise the alias table
// decides, falling back to the domain ID unchanged.
func (ip *InterPro) Resolve(domain, canonical string) string {
	key := domain + "\x00" + canonical
	if hit, ok := ip.cache.Get(key); ok {
		return hit.(string)
	}

	var resolved string
	if canonical != "" {
		resolved = ip.Tree.MostRemoteAncestor(canonical)
	} else {
		resolved = ip.Mapping.Get(domain)
	}

	ip.cache.Set(key, resolved, gocache.NoExpiration)
	return resolved
}

// LoadInterPro reads an InterPro parent-child mapping file. Each line
// holds an InterPro ID indented with two dashes per tree level,
// followed by ::-separated fields whose third and later entries are
// source-specific aliases of the ID.
func LoadInterPro(path string) (*InterPro, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open interpro file: %w", err)
	}
	defer func() { _ = f.Close() }()

	ip := NewInterPro()
	if err := ip.parse(f); err != nil {
		return nil, fmt.Errorf("parse interpro file %s: %w", path, err)
	}
	return ip, nil
}

func (ip *InterPro) parse(r io.Reader) error {
	var pathToRoot []string

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		dashCount := 0
		for dashCount < len(line) && line[dashCount] == '-' {
			dashCount++
		}
		if dashCount%2 != 0 {
			return fmt.Errorf("line %d: dash count is not even", lineNo)
		}

		parts := strings.Split(line[dashCount:], "::")
		id := parts[0]
		var aliases []string
		if len(parts) > 2 {
			aliases = parts[2:]
		}

		level := dashCount/2 + 1
		if level <= len(pathToRoot) {
			pathToRoot = pathToRoot[:level]
			pathToRoot[len(pathToRoot)-1] = id
		} else {
			pathToRoot = append(pathToRoot, id)
			if level != len(pathToRoot) {
				return fmt.Errorf("line %d: tree depth increased by more than one", lineNo)
			}
		}
		if len(pathToRoot) > 1 {
			ip.Tree[id] = pathToRoot[len(pathToRoot)-2]
		}

		for _, alias := range aliases {
			if strings.HasPrefix(alias, "PTHR") {
				if idx := strings.Index(alias, ":SF"); idx >= 0 {
					alias = alias[:idx]
				}
			}
			ip.Mapping[alias] = id
		}
	}
	return scanner.Err()
}

// Names maps InterPro IDs to human readable descriptions.
type Names map[string]string

// Get returns the description for the ID, or the ID itself when no
// name is known.
func (n Names) Get(id string) string {
	if name, ok := n[id]; ok {
		return name
	}
	return id
}

// LoadNames reads a two-column tab-separated ID-to-name file.
func LoadNames(path string) (Names, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open names file: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := make(Names)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimRight(scanner.Text(), "\r\n"), "\t", 2)
		if len(parts) == 2 {
			names[parts[0]] = parts[1]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read names file %s: %w", path, err)
	}
	return names, nil
}
