package document_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/invoice-renderer/internal/domain/document"
)

func TestLinkify_UnaURLHttps(t *testing.T) {
	got := document.Linkify("Visit https://example.com/x today")
	assert.Equal(t,
		`Visit <a href="https://example.com/x" target="_blank">example.com/x</a> today`,
		string(got))
}

func TestLinkify_HttpConservaElPrefijo(t *testing.T) {
	got := document.Linkify("see http://example.org")
	assert.Equal(t, `see <a href="http://example.org" target="_blank">http://example.org</a>`, string(got))
}

func TestLinkify_SinURLsEsIdempotente(t *testing.T) {
	text := "Payment due within thirty days"
	once := string(document.Linkify(text))
	assert.Equal(t, text, once)
	assert.Equal(t, once, string(document.Linkify(once)))
}

func TestLinkify_VariasURLs(t *testing.T) {
	got := string(document.Linkify("a https://one.io b https://two.io/p?q=1"))
	assert.Contains(t, got, `>one.io</a>`)
	assert.Contains(t, got, `>two.io/p?q=1</a>`)
	assert.Contains(t, got, `href="https://two.io/p?q=1"`)
}

func TestLinkify_VacioDevuelveVacio(t *testing.T) {
	assert.Equal(t, "", string(document.Linkify("")))
}

func TestLinkify_EscapaTextoPlano(t *testing.T) {
	got := string(document.Linkify("<b>hi</b> https://x.io"))
	assert.Contains(t, got, "&lt;b&gt;hi&lt;/b&gt; ")
	assert.Contains(t, got, `<a href="https://x.io" target="_blank">x.io</a>`)
}

func TestLinkify_CortaEnEspaciosUnicode(t *testing.T) {
	for name, sep := range map[string]string{
		"nbsp": "\u00a0",
		"vt":   "\v",
		"em":   "\u2003",
		"ls":   "\u2028",
		"bom":  "\ufeff",
	} {
		got := string(document.Linkify("Visit https://example.com/x" + sep + "today"))
		assert.Equal(t,
			`Visit <a href="https://example.com/x" target="_blank">example.com/x</a>`+sep+`today`,
			got, name)
	}
}

func TestSplitLinks_TramosEnOrden(t *testing.T) {
	segs := document.SplitLinks("a https://one.io b http://two.io")
	assert.Equal(t, []document.TextSegment{
		{Text: "a "},
		{Text: "one.io", URL: "https://one.io"},
		{Text: " b "},
		{Text: "http://two.io", URL: "http://two.io"},
	}, segs)
	assert.Nil(t, document.SplitLinks(""))
}
