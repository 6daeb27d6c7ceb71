package operator

import (
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/util"
)

// target is the capability set of a collection maintained by the projection engine. Positional
// targets accept index-based mutations; the others are maintained by value only.
type target[U any] interface {
	positional() bool
	insert(index int, vs []U) error
	removeAt(index, count int) error
	replaceAt(index int, v U) error
	add(vs []U) error
	remove(vs []U) error
	replace(oldValue, newValue U) error
	reset(vs []U) error
}

// projection filters upstream items with pred (nil keeps all), maps the survivors with sel and
// keeps target in sync.
type projection[T, U any] struct {
	pred   func(T) bool
	sel    func(T) U
	target target[U]
}

func (p *projection[T, U]) pass(v T) bool { return p.pred == nil || p.pred(v) }

func (p *projection[T, U]) project(vs []T) []U { return util.Map(p.sel, util.Filter(p.pred, vs)) }

// position maps the upstream index of c to the downstream one: the number of upstream items
// before the index that pass the filter. Items before the index are the same before and after
// the change.
func (p *projection[T, U]) position(c notification.Change[T]) (int, error) {
	if p.pred == nil {
		return c.Index, nil
	}
	cur := c.Current()
	if c.Index < 0 || c.Index > len(cur) {
		return 0, inconsistent("index %d outside upstream of %d items", c.Index, len(cur))
	}
	return util.Count(p.pred, cur[:c.Index]), nil
}

func (p *projection[T, U]) apply(c notification.Change[T]) error {
	indexed := c.Indexed() && p.target.positional()

	switch c.Action {
	case notification.Reset:
		return p.target.reset(p.project(c.Current()))

	case notification.Add:
		news := p.project(c.NewItems)
		if len(news) == 0 {
			return nil
		}
		if !indexed {
			return p.target.add(news)
		}
		pos, err := p.position(c)
		if err != nil {
			return err
		}
		return p.target.insert(pos, news)

	case notification.Remove:
		olds := p.project(c.OldItems)
		if len(olds) == 0 {
			return nil
		}
		if !indexed {
			return p.target.remove(olds)
		}
		pos, err := p.position(c)
		if err != nil {
			return err
		}
		return p.target.removeAt(pos, len(olds))

	case notification.Replace:
		if len(c.OldItems) == 1 && len(c.NewItems) == 1 {
			return p.replaceOne(c, indexed)
		}
		return p.replaceMany(c, indexed)
	}

	return inconsistent("unknown action %s", c.Action)
}

func (p *projection[T, U]) replaceOne(c notification.Change[T], indexed bool) error {
	o, n := c.OldItems[0], c.NewItems[0]
	passOld, passNew := p.pass(o), p.pass(n)
	if !passOld && !passNew {
		return nil
	}

	pos := 0
	if indexed {
		var err error
		if pos, err = p.position(c); err != nil {
			return err
		}
	}

	switch {
	case passOld && passNew:
		if indexed {
			return p.target.replaceAt(pos, p.sel(n))
		}
		return p.target.replace(p.sel(o), p.sel(n))
	case passOld:
		if indexed {
			return p.target.removeAt(pos, 1)
		}
		return p.target.remove([]U{p.sel(o)})
	default:
		if indexed {
			return p.target.insert(pos, []U{p.sel(n)})
		}
		return p.target.add([]U{p.sel(n)})
	}
}

// replaceMany handles multi-item replacements as a removal of the old segment followed by an
// addition of the new one.
func (p *projection[T, U]) replaceMany(c notification.Change[T], indexed bool) error {
	olds, news := p.project(c.OldItems), p.project(c.NewItems)

	if !indexed {
		if len(olds) > 0 {
			if err := p.target.remove(olds); err != nil {
				return err
			}
		}
		if len(news) > 0 {
			return p.target.add(news)
		}
		return nil
	}

	pos, err := p.position(c)
	if err != nil {
		return err
	}
	if len(olds) > 0 {
		if err := p.target.removeAt(pos, len(olds)); err != nil {
			return err
		}
	}
	if len(news) > 0 {
		return p.target.insert(pos, news)
	}
	return nil
}
