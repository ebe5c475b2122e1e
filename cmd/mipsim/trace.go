package main

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/mipsim/timing/core"
)

// retireTracer logs every retired instruction at debug level.
type retireTracer struct {
	logger logrus.FieldLogger
}

func newRetireTracer(logger logrus.FieldLogger) *retireTracer {
	return &retireTracer{logger: logger}
}

// Func implements sim.Hook.
func (t *retireTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != core.HookPosRetire {
		return
	}

	rec, ok := ctx.Item.(core.RetireRecord)
	if !ok {
		return
	}

	t.logger.WithFields(logrus.Fields{
		"pc":      fmt.Sprintf("0x%08x", rec.PC),
		"inst":    rec.Inst.String(),
		"bubbles": rec.Bubbles,
		"flushed": rec.Flushed,
	}).Debug("retire")
}
