package scenario

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-logr/logr"

	"github.com/l7mp/rxcollections/pkg/metrics"
	"github.com/l7mp/rxcollections/pkg/notification"
	"github.com/l7mp/rxcollections/pkg/operator"
	"github.com/l7mp/rxcollections/pkg/source"
	"github.com/l7mp/rxcollections/pkg/stream"
)

// Options configures a run.
type Options struct {
	Logger  logr.Logger
	Metrics *metrics.Metrics
}

// Run builds the scenario, subscribes to its output and runs every step. Notifications are written
// to w one per line. Run fails on the first rejected mutation or output stream error.
func (s *Scenario) Run(w io.Writer, opts Options) error {
	logger := opts.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	log := logger.WithName("scenario")

	sources := map[string]*source.List[any]{}
	stages := map[string]stage{}
	for _, spec := range s.Sources {
		src := source.NewList[any](source.WithName(spec.Name), source.WithLogger(logger),
			source.WithMetrics(opts.Metrics))
		src.AddRange(spec.Items...)
		sources[spec.Name] = src
		stages[spec.Name] = stage{list: src}
	}

	g, err := s.Graph()
	if err != nil {
		return err
	}
	order, _ := g.Sort()
	specs := map[string]StageSpec{}
	for _, spec := range s.Pipeline {
		specs[spec.Name] = spec
	}

	for _, name := range order {
		spec, ok := specs[name]
		if !ok {
			continue
		}
		sopts := []source.Option{source.WithName(name), source.WithLogger(logger),
			source.WithMetrics(opts.Metrics)}

		var st stage
		if spec.Op == "concat" {
			st, err = concat(spec, stages, sopts)
		} else {
			st, err = stages[spec.Input].then(spec, logger, sopts)
		}
		if err != nil {
			return fmt.Errorf("stage %q: %w", name, err)
		}

		log.V(1).Info("stage ready", "name", name, "op", spec.Op, "inputs", spec.inputs())
		stages[name] = st
	}

	output := s.Output
	out, ok := stages[output]
	if !ok {
		return fmt.Errorf("unknown output %q", output)
	}

	var streamErr error
	sub := out.subscribe(
		func(line string) { fmt.Fprintf(w, "%s: %s\n", output, line) },
		func(err error) { streamErr = err },
	)
	defer sub.Dispose()

	for i, step := range s.Steps {
		log.V(4).Info("running step", "index", i, "source", step.Source, "op", step.Op)
		if err := apply(sources[step.Source], step); err != nil {
			return fmt.Errorf("step %d (%s on %s): %w", i, step.Op, step.Source, err)
		}
		if streamErr != nil {
			return fmt.Errorf("output failed at step %d: %w", i, streamErr)
		}
	}

	return streamErr
}

func concat(spec StageSpec, stages map[string]stage, opts []source.Option) (stage, error) {
	if len(spec.Inputs) == 0 {
		return stage{}, errors.New("concat: no inputs")
	}
	children := make([]stream.Observable[notification.List[any]], 0, len(spec.Inputs))
	for _, name := range spec.Inputs {
		in, ok := stages[name]
		if !ok {
			return stage{}, fmt.Errorf("concat: unknown input %q", name)
		}
		children = append(children, in.asList())
	}
	return stage{list: operator.Concat(children, opts...)}, nil
}

func apply(src *source.List[any], step Step) error {
	if src == nil {
		return fmt.Errorf("source is not a list")
	}
	switch step.Op {
	case "add":
		if len(step.Items) > 0 {
			src.AddRange(step.Items...)
		} else {
			src.Add(step.Item)
		}
	case "insert":
		items := step.Items
		if len(items) == 0 {
			items = []any{step.Item}
		}
		return src.InsertRange(step.Index, items...)
	case "remove":
		src.Remove(step.Item)
	case "removeAt":
		count := step.Count
		if count == 0 {
			count = 1
		}
		return src.RemoveRange(step.Index, count)
	case "replace":
		src.Replace(step.Old, step.Item)
	case "set":
		return src.SetItem(step.Index, step.Item)
	case "clear":
		src.Clear()
	case "reset":
		src.ResetTo(step.Items...)
	case "complete":
		src.Complete()
	default:
		return fmt.Errorf("unknown step %q", step.Op)
	}
	return nil
}
