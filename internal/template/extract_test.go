package template

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyFor_SameTextSameKey(t *testing.T) {
	require.Equal(t, KeyFor("Hello", nil), KeyFor("Hello", nil))
	require.NotEqual(t, KeyFor("Hello", nil), KeyFor("Goodbye", nil))
}

func TestKeyFor_ClassesChangeKey(t *testing.T) {
	plain := KeyFor("Hello", nil)
	styled := KeyFor("Hello", []string{"hero"})

	require.NotEqual(t, plain, styled)
	require.Contains(t, styled, "_hero")
}

func TestKeyFor_ClassOrderDoesNotMatter(t *testing.T) {
	require.Equal(t, KeyFor("Hello", []string{"b", "a"}), KeyFor("Hello", []string{"a", "b"}))
}

func TestNew_RecordsEmbeddedLiterals(t *testing.T) {
	tr := New("Pay &{$5} before &{Friday}", nil, nil)

	require.Equal(t, []string{"$5", "Friday"}, tr.Literals)
	require.Empty(t, tr.Translated)
}

func TestExtractText_CollectsTranslatableSpansOnly(t *testing.T) {
	content := "Hi ${Welcome home}! Cost: &{42} ${Goodbye}"

	spans := ExtractText(content)
	require.Len(t, spans, 2)
	require.Equal(t, "Welcome home", spans[0].Original)
	require.Equal(t, "Goodbye", spans[1].Original)
}

func TestExtractText_DeduplicatesRepeatedSpans(t *testing.T) {
	spans := ExtractText("${Hello} and ${Hello} again")
	require.Len(t, spans, 1)
}

func TestRenderText_SubstitutesAndUnwraps(t *testing.T) {
	content := "${Hello}, price is &{42}."

	got, err := RenderText(content, func(key, original string) (string, error) {
		require.Equal(t, KeyFor("Hello", nil), key)
		require.Equal(t, "Hello", original)
		return "Geia sou", nil
	})
	require.NoError(t, err)
	require.Equal(t, "Geia sou, price is 42.", got)
}

func TestRenderText_NoMarkers_ReturnsInputUnchanged(t *testing.T) {
	got, err := RenderText("plain text", func(key, original string) (string, error) {
		t.Fatal("lookup should not be called")
		return "", nil
	})
	require.NoError(t, err)
	require.Equal(t, "plain text", got)
}

func TestUnwrapMarkers_StripsBothMarkerKinds(t *testing.T) {
	require.Equal(t, "Hello 42", UnwrapMarkers("${Hello} &{42}"))
}
