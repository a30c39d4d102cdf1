package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/konnekting/konnekting-go/pkg/bus"
	"github.com/konnekting/konnekting-go/pkg/protocol"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// runPipe reads one hex frame per line from in and writes every frame the
// device sends to out. Lines starting with # are comments; "button" presses
// the programming button.
func runPipe(ctx context.Context, rt *simulator, in io.Reader, out io.Writer) error {
	rt.OnSend(func(t bus.Telegram) {
		if t.Index == protocol.ProvisioningObjectIndex {
			if f, err := wire.FrameFromBytes(t.Data); err == nil {
				fmt.Fprintln(out, f.String())
			}
		}
	})

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case line == "button":
			if err := rt.PressButton(); err != nil {
				return err
			}
			continue
		}

		f, err := wire.ParseHex(line)
		if err != nil {
			rt.logger.Warn("skipping line", "line", line, "error", err)
			continue
		}
		if err := rt.Inject(f); err != nil {
			return err
		}
	}
	return scanner.Err()
}
