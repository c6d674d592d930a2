package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkarolyi/genefam/internal/interpro"
	"github.com/pkarolyi/genefam/internal/model"
)

// noAssignment is the architecture label of sequences with no accepted
// assignment at all.
const noAssignment = "NO_ASSIGNMENT"

// ArchitectureIndex groups sequences by their ordered domain ID tuple.
type ArchitectureIndex struct {
	members   map[string][]string
	positions map[string]string
}

// NewArchitectureIndex returns an empty index.
func NewArchitectureIndex() *ArchitectureIndex {
	return &ArchitectureIndex{
		members:   make(map[string][]string),
		positions: make(map[string]string),
	}
}

// Add indexes the sequence under its domain architecture.
func (x *ArchitectureIndex) Add(seq *model.SequenceAssignments) {
	arch := seq.DomainArchitecture()
	key := noAssignment
	if len(arch) > 0 {
		key = strings.Join(arch, ";")
	}
	x.members[key] = append(x.members[key], seq.ID)

	if len(arch) > 0 {
		sorted := seq.SortedAssignments()
		parts := make([]string, len(sorted))
		for i, a := range sorted {
			parts[i] = a.ShortString()
		}
		x.positions[seq.ID] = strings.Join(parts, ";")
	}
}

// Group is one domain architecture family and its member sequences.
type Group struct {
	Architecture string
	Members      []string
}

// Groups returns the architecture families sorted by descending member
// count, equal-sized families by architecture string.
func (x *ArchitectureIndex) Groups() []Group {
	groups := make([]Group, 0, len(x.members))
	for arch, members := range x.members {
		groups = append(groups, Group{Architecture: arch, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Members) != len(groups[j].Members) {
			return len(groups[i].Members) > len(groups[j].Members)
		}
		return groups[i].Architecture < groups[j].Architecture
	})
	return groups
}

// Write emits one row per sequence: sequence ID, family size and the
// architecture, largest families first. When names are given a fourth
// column carries the per-domain descriptions, and a fifth the
// positional form of the architecture.
func (x *ArchitectureIndex) Write(w io.Writer, names interpro.Names) error {
	for _, group := range x.Groups() {
		desc := ""
		if names != nil && group.Architecture != noAssignment {
			ids := strings.Split(group.Architecture, ";")
			parts := make([]string, len(ids))
			for i, id := range ids {
				parts[i] = names.Get(id)
			}
			desc = strings.Join(parts, ";")
		}
		for _, member := range group.Members {
			if names == nil {
				if _, err := fmt.Fprintf(w, "%s\t%d\t%s\n", member, len(group.Members), group.Architecture); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
				member, len(group.Members), group.Architecture, desc, x.positions[member]); err != nil {
				return err
			}
		}
	}
	return nil
}
