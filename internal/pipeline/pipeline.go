package pipeline

// Processor is a single stage working on a shared context value.
type Processor[C any] interface {
	Process(ctx C) error
}

// ProcessorFunc adapts a plain function to Processor.
type ProcessorFunc[C any] func(ctx C) error

func (f ProcessorFunc[C]) Process(ctx C) error { return f(ctx) }

// Pipeline represents a sequence of processing stages.
type Pipeline[C any] struct {
	processors []Processor[C]
}

func New[C any](processors ...Processor[C]) *Pipeline[C] {
	return &Pipeline[C]{processors: processors}
}

// Len returns the number of stages.
func (p *Pipeline[C]) Len() int {
	return len(p.processors)
}

// Run executes the stages in order. The first failing stage stops the run
// and its error is returned unchanged; later stages never see a partial context.
func (p *Pipeline[C]) Run(ctx C) error {
	for _, processor := range p.processors {
		if err := processor.Process(ctx); err != nil {
			return err
		}
	}
	return nil
}
