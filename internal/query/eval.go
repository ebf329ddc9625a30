// eval.go reduces an expression tree to the set of matching paths.
//
// Evaluation reads one Source for its whole duration. When the Source is an
// index snapshot the result reflects exactly one consistent state of the
// index, even while writers publish newer snapshots.

package query

import "github.com/jpl-au/genie/internal/index"

// Source supplies the sets an expression is evaluated against.
// *index.Index satisfies it.
type Source interface {
	PathsOf(tag string) index.Set
	Universe() index.Set
}

// Eval returns the paths matching e. Unknown tags match nothing. NOT is
// taken relative to the universe of tagged paths, so untagged files never
// appear in a result. Sets returned by src are never modified, and the
// result may share storage with src, so callers treat it as read-only.
func Eval(e Expr, src Source) index.Set {
	ev := &evaluator{src: src}
	return ev.eval(e)
}

type evaluator struct {
	src      Source
	universe index.Set
}

func (ev *evaluator) eval(e Expr) index.Set {
	switch n := e.(type) {
	case Tag:
		return ev.src.PathsOf(n.Name)
	case And:
		l := ev.eval(n.L)
		if l.Len() == 0 {
			return index.Set{}
		}
		return l.Intersect(ev.eval(n.R))
	case Or:
		return ev.eval(n.L).Union(ev.eval(n.R))
	case Xor:
		return ev.eval(n.L).SymmetricDifference(ev.eval(n.R))
	case Not:
		if ev.universe == nil {
			ev.universe = ev.src.Universe()
		}
		return ev.universe.Difference(ev.eval(n.X))
	default:
		return index.Set{}
	}
}
