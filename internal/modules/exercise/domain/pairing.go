package domain

import (
	"fmt"
	"slices"
)

// Upload is one user-supplied file. Name is what the naming convention is
// matched against; Path is where the content is read from.
type Upload struct {
	Name string
	Path string
}

type slot struct {
	problem  string
	solution string
}

// Pairing accumulates exercise sides by id until every read has settled.
type Pairing struct {
	slots map[string]*slot
}

func NewPairing() *Pairing {
	return &Pairing{slots: map[string]*slot{}}
}

// Reserve records that id was seen even when its content never arrives, so
// Build reports the missing side.
func (p *Pairing) Reserve(ref FileRef) {
	if _, ok := p.slots[ref.ID]; !ok {
		p.slots[ref.ID] = &slot{}
	}
}

// Fill stores content for one side. A later Fill of the same side wins.
func (p *Pairing) Fill(ref FileRef, content string) {
	p.Reserve(ref)
	s := p.slots[ref.ID]
	switch ref.Kind {
	case KindSolution:
		s.solution = content
	default:
		s.problem = content
	}
}

// Build commits every id with both sides present and returns one error
// message per missing side, ordered by id.
func (p *Pairing) Build() (Catalog, []string) {
	ids := make([]string, 0, len(p.slots))
	for id := range p.slots {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, CompareIDs)

	var (
		complete []Exercise
		errs     []string
	)
	for _, id := range ids {
		s := p.slots[id]
		ex := Exercise{ID: id, Problem: s.problem, Solution: s.solution}
		if ex.Validate() == nil {
			complete = append(complete, ex)
			continue
		}
		if s.problem == "" {
			errs = append(errs, MissingProblem(id))
		}
		if s.solution == "" {
			errs = append(errs, MissingSolution(id))
		}
	}
	return NewCatalog(complete...), errs
}

func MissingProblem(id string) string {
	return fmt.Sprintf("missing problem for exercise %s", id)
}

func MissingSolution(id string) string {
	return fmt.Sprintf("missing solution for exercise %s", id)
}
