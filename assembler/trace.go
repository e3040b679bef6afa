package assembler

import (
	"github.com/k0kubun/pp/v3"
)

var tracer = func() *pp.PrettyPrinter {
	p := pp.New()
	p.SetColoringEnabled(false)
	return p
}()

func (g *Generator) tracef(format string, args ...any) {
	if g.Trace == nil {
		return
	}
	tracer.Fprintf(g.Trace, format, args...)
}
