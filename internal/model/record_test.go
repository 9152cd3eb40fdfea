package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleList() List {
	return List{
		{ID: "1", Title: "Home Wi-Fi", Source: "https://wifi.example.com/qr/1", Date: "2025/05/30"},
		{ID: "2", Title: "Office Wi-Fi", Source: "https://wifi.example.com/qr/2", Date: "2025/05/29"},
		{ID: "3", Title: "Business card", Source: "https://meishi.example.com/qr/3", Date: "2025/05/28"},
	}
}

func TestRecordEqualComparesAllFields(t *testing.T) {
	a := Record{ID: "1", Title: "x", Source: "s", Date: "d"}
	b := a
	assert.True(t, a.Equal(b))

	b.Image = "https://img.example.com/1.png"
	assert.False(t, a.Equal(b), "image reference must take part in equality")

	b = a
	b.Date = "other"
	assert.False(t, a.Equal(b))
}

func TestWithoutDoesNotMutate(t *testing.T) {
	l := sampleList()
	out := l.Without(1)

	assert.Equal(t, []string{"1", "3"}, out.IDs())
	assert.Equal(t, []string{"1", "2", "3"}, l.IDs())

	// Out of range returns an equal copy
	assert.True(t, l.Without(10).Equal(l))
}

func TestWithRecordDoesNotMutate(t *testing.T) {
	l := sampleList()
	rec := l[0]
	rec.Title = "Renamed"

	out := l.WithRecord(0, rec)
	assert.Equal(t, "Renamed", out[0].Title)
	assert.Equal(t, "Home Wi-Fi", l[0].Title)
}

func TestIndexOf(t *testing.T) {
	l := sampleList()
	assert.Equal(t, 2, l.IndexOf("3"))
	assert.Equal(t, -1, l.IndexOf("missing"))
}

func TestDuplicateIDs(t *testing.T) {
	l := append(sampleList(), Record{ID: "2"}, Record{ID: "2"}, Record{ID: "1"})
	assert.Equal(t, []string{"2", "1"}, l.DuplicateIDs())
	assert.Empty(t, sampleList().DuplicateIDs())
}

func TestCloneNil(t *testing.T) {
	var l List
	assert.Nil(t, l.Clone())
}
