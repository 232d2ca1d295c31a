package main

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/blockfall/driver"
	"github.com/lixenwraith/blockfall/engine"
	"github.com/lixenwraith/blockfall/render"
)

func TestReport(t *testing.T) {
	stats := engine.Stats{Ticks: 120, Pieces: 9, RowsCleared: 2}

	tests := []struct {
		name       string
		res        driver.Result
		err        error
		wantCode   int
		wantStdout string
		wantStderr bool
	}{
		{"game over prints summary", driver.ResultGameOver, nil, 0, "GAME OVER ticks 120, pieces 9, rows 2\n", false},
		{"quit is silent", driver.ResultQuit, nil, 0, "", false},
		{"terminated by signal", driver.ResultNone, context.Canceled, 0, "", false},
		{"screen too small is fatal", driver.ResultNone, fmt.Errorf("draw: %w", render.ErrScreenTooSmall), 1, "", true},
		{"other driver error", driver.ResultNone, fmt.Errorf("boom"), 1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := report(&stdout, &stderr, zerolog.Nop(), stats, tt.res, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.Len() > 0)
		})
	}
}

func TestRunRejectsBadFlags(t *testing.T) {
	assert.Equal(t, 1, run([]string{"-tick", "0s"}))
	assert.Equal(t, 1, run([]string{"-no-such-flag"}))
}

func TestRunRejectsBadKeys(t *testing.T) {
	assert.Equal(t, 1, run([]string{"-keys", "fly=x"}))
}
