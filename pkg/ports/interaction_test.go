package ports_test

import (
	"context"
	"testing"

	"github.com/aretw0/tasklist/pkg/ports"
	"github.com/stretchr/testify/assert"
)

func TestConfirmFunc(t *testing.T) {
	var asked string
	c := ports.ConfirmFunc(func(_ context.Context, prompt string) bool {
		asked = prompt
		return prompt == "yes?"
	})

	assert.True(t, c.Confirm(context.Background(), "yes?"))
	assert.False(t, c.Confirm(context.Background(), "no?"))
	assert.Equal(t, "no?", asked)

	assert.True(t, ports.AlwaysConfirm.Confirm(context.Background(), "anything"))
	assert.False(t, ports.NeverConfirm.Confirm(context.Background(), "anything"))
}

func TestNotifyFunc(t *testing.T) {
	var got []string
	n := ports.NotifyFunc(func(msg string) { got = append(got, msg) })
	n.Notify("one")
	n.Notify("two")
	assert.Equal(t, []string{"one", "two"}, got)

	ports.DiscardNotices.Notify("dropped")
}
