package cmd

import (
	"context"

	"github.com/ardnew/xeval/cli/cmd/repl"
	"github.com/ardnew/xeval/lang"
	"github.com/ardnew/xeval/log"
	"github.com/ardnew/xeval/pkg"
)

// Repl runs the interactive expression shell.
type Repl struct{}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context, parser *lang.Parser) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	return repl.Run(ctx, parser, pkg.CacheDir(), log.Default())
}
