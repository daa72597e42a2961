package capps

import (
	"strings"
	"testing"
)

func TestMarshalStructure(t *testing.T) {
	root := NewElement("root").WithAttr("key", "value").Add(
		Text("leaf", "text"),
		NewElement("empty"),
	)

	got := string(Marshal(root))
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<root key=\"value\">\n" +
		"    <leaf>text</leaf>\n" +
		"    <empty/>\n" +
		"</root>\n"

	if got != want {
		t.Errorf("Marshal output:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarshalEscapesReservedCharacters(t *testing.T) {
	root := NewElement("root").
		WithAttr("attr", `a "quoted" & <thing>`).
		Add(Text("desc", "GIBSON <LES PAUL> & FRIENDS 'USED'"))

	got := string(Marshal(root))

	if !strings.Contains(got, "GIBSON &lt;LES PAUL&gt; &amp; FRIENDS &apos;USED&apos;") {
		t.Errorf("text value not escaped:\n%s", got)
	}
	if !strings.Contains(got, `attr="a &quot;quoted&quot; &amp; &lt;thing&gt;"`) {
		t.Errorf("attribute value not escaped:\n%s", got)
	}
}

func TestMarshalNestedIndentation(t *testing.T) {
	root := NewElement("a").Add(
		NewElement("b").Add(
			Text("c", "deep"),
		),
	)

	got := string(Marshal(root))
	if !strings.Contains(got, "\n        <c>deep</c>\n") {
		t.Errorf("inner leaf not indented two levels:\n%s", got)
	}
	if !strings.Contains(got, "\n    </b>\n") {
		t.Errorf("closing tag not aligned with opening:\n%s", got)
	}
}
