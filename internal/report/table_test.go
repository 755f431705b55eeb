package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tallyhq/tally/internal/ledger"
)

func TestRender(t *testing.T) {
	out := Render([]ledger.AccountSummary{
		{Client: 1, Available: 15_000, Held: 0, Total: 15_000, Locked: false},
		{Client: 2, Available: 0, Held: 0, Total: 0, Locked: true},
	})

	assert.Contains(t, out, "client")
	assert.Contains(t, out, "1.5")
	assert.Contains(t, out, "true")
	assert.Contains(t, out, "false")
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil)
	assert.Contains(t, out, "available")
}
