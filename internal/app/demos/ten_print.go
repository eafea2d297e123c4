package demos

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/rook-computer/panels/internal/app"
	"github.com/rook-computer/panels/internal/virtual"
)

func tenPrint(ctx context.Context, env app.Env) error {
	term := virtual.NewTerminal(env.Device, nil)
	term.Animate = true

	if err := term.Println("10 PRINT CHR$(205.5+RND(1)); : GOTO 10"); err != nil {
		return err
	}
	if err := term.Println(""); err != nil {
		return err
	}
	if err := app.Sleep(ctx, 4*time.Second); err != nil {
		return err
	}

	term.Animate = false
	for {
		ch := '/'
		if rand.Float64() >= 0.5 {
			ch = '\\'
		}
		if err := term.Putch(ch); err != nil {
			return err
		}
		if err := term.Flush(); err != nil {
			return err
		}
		if err := app.Sleep(ctx, 100*time.Millisecond); err != nil {
			return err
		}
	}
}
