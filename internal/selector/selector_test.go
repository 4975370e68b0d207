package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
<html><body>
  <div class="card">
    <h2 class="name">  Perfect World  </h2>
    <img src=" /cover.jpg " alt="">
    <a class="tag" href="/genre/action/">Action</a>
    <a class="tag" href="/genre/fantasy/">Fantasy</a>
    <a class="tag">No link</a>
  </div>
</body></html>`

func TestTextAndAttr(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	title := Text(doc.Selection, "h2.name")
	require.NotNil(t, title)
	assert.Equal(t, "Perfect World", *title)

	src := Attr(doc.Selection, "div.card img", "src")
	require.NotNil(t, src)
	assert.Equal(t, "/cover.jpg", *src)
}

func TestMissingPathIsNil(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	assert.Nil(t, Text(doc.Selection, "div.absent"))
	assert.Nil(t, Attr(doc.Selection, "div.absent img", "src"))
	assert.Nil(t, Attr(doc.Selection, "div.card img", "data-src"))
	assert.Equal(t, "fallback", TextOr(doc.Selection, "span.none", "fallback"))
	assert.Equal(t, "", AttrOr(doc.Selection, "span.none", "href", ""))
	assert.False(t, Exists(doc.Selection, "span.none"))
}

func TestInvalidSelectorMatchesNothing(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.Nil(t, Text(doc.Selection, "div[[["))
	})
}

func TestNilRootIsTolerated(t *testing.T) {
	assert.Nil(t, Text(nil, "h1"))
	assert.Nil(t, Attr(nil, "a", "href"))
	assert.Empty(t, Texts(nil, "a"))
}

func TestEmptyPathSelectsRoot(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	card, ok := Find(doc.Selection, "div.card")
	require.True(t, ok)
	assert.Equal(t, "Perfect World", *Text(card.Find("h2"), ""))
}

func TestTextsKeepDocumentOrder(t *testing.T) {
	doc, err := ParseString(fixture)
	require.NoError(t, err)

	assert.Equal(t, []string{"Action", "Fantasy", "No link"}, Texts(doc.Selection, "a.tag"))
	assert.Equal(t, []string{}, Texts(doc.Selection, "a.none"))
}
