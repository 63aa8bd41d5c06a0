package domain_test

import (
	"testing"

	"github.com/aretw0/tasklist/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	list := domain.NewList(nil)
	dog, _ := list.Add("Walk dog")
	cat, _ := list.Add("Walk cat")
	mail, _ := list.Add("Send MAIL")
	tasks := list.Tasks()

	t.Run("blank term returns input unchanged", func(t *testing.T) {
		for _, term := range []string{"", "  ", "\t"} {
			assert.Equal(t, tasks, domain.Filter(tasks, term))
		}
	})

	t.Run("substring match keeps insertion order", func(t *testing.T) {
		assert.Equal(t, []int64{dog.ID, cat.ID}, ids(domain.Filter(tasks, "walk")))
		assert.Equal(t, []int64{dog.ID}, ids(domain.Filter(tasks, "dog")))
	})

	t.Run("case variants yield identical results", func(t *testing.T) {
		want := domain.Filter(tasks, "mail")
		assert.Equal(t, []int64{mail.ID}, ids(want))
		for _, term := range []string{"MAIL", "Mail", "mAiL"} {
			assert.Equal(t, want, domain.Filter(tasks, term))
		}
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		assert.Empty(t, domain.Filter(tasks, "zebra"))
	})

	t.Run("pure", func(t *testing.T) {
		before := list.Tasks()
		first := domain.Filter(tasks, "walk")
		second := domain.Filter(tasks, "walk")
		assert.Equal(t, first, second)
		assert.Equal(t, before, tasks)
	})
}
