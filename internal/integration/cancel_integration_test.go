package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"fquack/internal/app"
)

func TestCanceledRunExits130(t *testing.T) {
	fq := write(t, "big.fq", strings.Repeat("@r\nACGTACGT\n+\nIIIIIIII\n", 10000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, output := range []string{"tsv", "count"} {
		code := app.RunContext(ctx, []string{"--output", output, fq}, io.Discard, io.Discard)
		if code != 130 {
			t.Fatalf("%s: expected exit 130 on cancel, got %d", output, code)
		}
	}
}
