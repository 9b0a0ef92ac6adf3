package shuffle

import (
	"github.com/nathoo/doorshuffle/logic"
	"github.com/nathoo/doorshuffle/random"
	"github.com/nathoo/doorshuffle/types"
	"github.com/nathoo/doorshuffle/world"
)

// placement is one resolved direction of a placement, ready to apply.
type placement struct {
	original    *types.Entrance
	replacement *types.Entrance
	from        *types.Area
	expr        logic.Expr
	bridge      bool // also open the MM hub from the source area
}

// resolve looks up everything a single-direction placement touches without
// changing the world.
func (s *Shuffler) resolve(original, replacement string, overworld bool) (placement, error) {
	oe, err := s.entrance(original)
	if err != nil {
		return placement{}, err
	}
	re, err := s.entrance(replacement)
	if err != nil {
		return placement{}, err
	}
	from, err := s.area(oe.From)
	if err != nil {
		return placement{}, err
	}
	expr, err := s.canonicalExpr(oe)
	if err != nil {
		return placement{}, err
	}
	return placement{
		original:    oe,
		replacement: re,
		from:        from,
		expr:        expr,
		bridge:      overworld && oe.Game == types.GameOoT && re.Game == types.GameMM,
	}, nil
}

// apply commits one direction. Going from OoT into MM also opens the MM hub,
// and the edge then requires resetting time.
func (s *Shuffler) apply(p placement) {
	expr := p.expr
	if p.bridge {
		p.from.Exits[world.MMHubArea] = expr
		expr = logic.And([]logic.Expr{expr, s.resetTime})
	}
	p.from.Exits[p.replacement.To] = expr
	s.result.Overrides[p.original.ID] = p.replacement.ID
}

// place routes original to replacement and, when both have a reverse,
// replacement's reverse to original's reverse. Both directions are resolved
// before either is applied.
func (s *Shuffler) place(original, replacement string, overworld bool) error {
	fwd, err := s.resolve(original, replacement, overworld)
	if err != nil {
		return err
	}

	var back *placement
	if fwd.original.Reverse != "" && fwd.replacement.Reverse != "" {
		p, err := s.resolve(fwd.replacement.Reverse, fwd.original.Reverse, overworld)
		if err != nil {
			return err
		}
		back = &p
	}

	s.apply(fwd)
	if back != nil {
		s.apply(*back)
	}
	return nil
}

// placeRegions permutes every region entrance. Region links have no bearing
// on completability, so nothing is checked.
func (s *Shuffler) placeRegions() error {
	entrances := s.world.EntrancesOfType(types.EntranceRegion)
	for _, e := range entrances {
		from, err := s.area(e.From)
		if err != nil {
			return err
		}
		delete(from.Exits, e.To)
	}

	shuffled := random.Shuffle(s.input.Random, entrances)
	for i := range entrances {
		if err := s.place(entrances[i].ID, shuffled[i].ID, true); err != nil {
			return err
		}
	}
	return nil
}
