package plugin

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aladin/src/internal/schema"
)

func TestSliceQueue_Concurrent(t *testing.T) {
	var q SliceQueue[int]
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			q.Put(n)
		}(i)
	}
	wg.Wait()
	assert.Len(t, q.Items(), 50)
}

func TestChanQueue(t *testing.T) {
	ch := make(ChanQueue[string], 1)
	ch.Put("x")
	assert.Equal(t, "x", <-ch)
}

func TestAbortFlag(t *testing.T) {
	var a AbortFlag
	assert.False(t, a.IsSet())
	a.Set()
	assert.True(t, a.IsSet())
	assert.True(t, Aborted(&a))

	var nilFlag *AbortFlag
	assert.False(t, nilFlag.IsSet())
	assert.False(t, Aborted(nil))
	assert.False(t, Aborted(Never))
}

func TestLink(t *testing.T) {
	for kind, tmpl := range LinkTemplates {
		assert.Equal(t, 1, countVerb(tmpl), "template for %s", kind)
	}
	got, ok := Link(schema.IDAladin, "40869703")
	require.True(t, ok)
	assert.Equal(t, "https://www.aladin.co.kr/shop/wproduct.aspx?ItemId=40869703", got)

	got, ok = Link(schema.IDAladinSeries, "12345")
	require.True(t, ok)
	assert.Equal(t, "https://www.aladin.co.kr/shop/common/wseriesitem.aspx?SRID=12345", got)

	_, ok = Link(schema.IDISBN, "9788936434267")
	assert.False(t, ok)
	_, ok = Link(schema.IDAladin, " ")
	assert.False(t, ok)
}

func TestBookURLAndIDFromURL(t *testing.T) {
	kind, value, link, ok := BookURL(map[string]string{schema.IDAladin: "40869703", schema.IDISBN13: "9788936434267"})
	require.True(t, ok)
	assert.Equal(t, schema.IDAladin, kind)
	assert.Equal(t, "40869703", value)

	k, v, ok := IDFromURL(link)
	require.True(t, ok)
	assert.Equal(t, schema.IDAladin, k)
	assert.Equal(t, "40869703", v)

	k, v, ok = IDFromURL("https://www.aladin.co.kr/shop/common/wseriesitem.aspx?SRID=99")
	require.True(t, ok)
	assert.Equal(t, schema.IDAladinSeries, k)
	assert.Equal(t, "99", v)

	_, _, ok = IDFromURL("https://example.com/shop/wproduct.aspx?ItemId=1")
	assert.False(t, ok)
	_, _, _, ok = BookURL(map[string]string{schema.IDISBN: "1"})
	assert.False(t, ok)
}

func countVerb(s string) int {
	n := 0
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' && s[i+1] == 's' {
			n++
		}
	}
	return n
}
