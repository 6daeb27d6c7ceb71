package scenario

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/l7mp/rxcollections/pkg/expression"
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/operator"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// stage is the output of a pipeline stage. Exactly one of the streams is set.
type stage struct {
	list   stream.Observable[notification.List[any]]
	sorted stream.Observable[notification.SortedList[any]]
	set    stream.Observable[notification.SortedSet[any]]
}

// asList views the stage as a list stream, as needed by concat.
func (s stage) asList() stream.Observable[notification.List[any]] {
	switch {
	case s.list != nil:
		return s.list
	case s.sorted != nil:
		return stream.Select(s.sorted, notification.SortedList[any].ToList)
	default:
		return operator.Select(s.set, func(v any) any { return v })
	}
}

// subscribe connects a printer to the stage.
func (s stage) subscribe(print func(string), fail func(error)) stream.Subscription {
	switch {
	case s.list != nil:
		return s.list.Subscribe(printer[notification.List[any]](print, fail))
	case s.sorted != nil:
		return s.sorted.Subscribe(printer[notification.SortedList[any]](print, fail))
	default:
		return s.set.Subscribe(printer[notification.SortedSet[any]](print, fail))
	}
}

func printer[N fmt.Stringer](print func(string), fail func(error)) stream.Observer[N] {
	return stream.ObserverFuncs[N]{
		NextFunc:      func(n N) { print(n.String()) },
		ErrorFunc:     fail,
		CompletedFunc: func() { print("completed") },
	}
}

// then applies spec to the stage.
func (s stage) then(spec StageSpec, log logr.Logger, opts []source.Option) (stage, error) {
	switch {
	case s.list != nil:
		return derive(s.list, spec, log, opts)
	case s.sorted != nil:
		return derive(s.sorted, spec, log, opts)
	default:
		return derive(s.set, spec, log, opts)
	}
}

func derive[N operator.Notification[any, N]](in stream.Observable[N], spec StageSpec, log logr.Logger,
	opts []source.Option) (stage, error) {
	var e *expression.Expression
	if spec.Expr != "" {
		var err error
		if e, err = expression.Compile(spec.Expr, log); err != nil {
			return stage{}, err
		}
	}

	order := expression.Compare
	if e != nil {
		order = e.OrderBy()
	}

	switch spec.Op {
	case "where":
		if e == nil {
			return stage{}, fmt.Errorf("where: missing expression")
		}
		return stage{list: operator.Where(in, e.Predicate(), opts...)}, nil
	case "select":
		if e == nil {
			return stage{}, fmt.Errorf("select: missing expression")
		}
		return stage{list: operator.Select(in, e.Selector(), opts...)}, nil
	case "sort":
		return stage{sorted: operator.Sort(in, order, opts...)}, nil
	case "sortset":
		return stage{set: operator.SortSet(in, order, opts...)}, nil
	}
	return stage{}, fmt.Errorf("unknown operator %q", spec.Op)
}
