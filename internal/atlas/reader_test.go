package atlas

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const harvardOxford = `<?xml version="1.0" encoding="ISO-8859-1"?>
<atlas version="1.0">
  <header>
    <name>Harvard-Oxford Cortical Structural Atlas</name>
    <shortname>HOCPA</shortname>
    <type>Probabilistic</type>
    <images>
      <imagefile>/HarvardOxford/HarvardOxford-cort-prob-2mm</imagefile>
      <summaryimagefile>/HarvardOxford/HarvardOxford-cort-maxprob-thr0-2mm</summaryimagefile>
    </images>
  </header>
  <data>
    <label index="0" x="48" y="94" z="35">Frontal Pole</label>
    <label index="1" x="25" y="70" z="32">Insular Cortex</label>
    <label index="2" x="33" y="73" z="61">Superior Frontal Gyrus</label>
  </data>
</atlas>`

func TestParse_HarvardOxford(t *testing.T) {
	md, err := Parse(strings.NewReader(harvardOxford))
	require.NoError(t, err)

	assert.Equal(t, []Label{
		{Index: 0, Text: "Frontal Pole"},
		{Index: 1, Text: "Insular Cortex"},
		{Index: 2, Text: "Superior Frontal Gyrus"},
	}, md.Labels)
	assert.Equal(t, "Harvard-Oxford Cortical Structural Atlas", md.Header.Name)
	assert.Equal(t, "HOCPA", md.Header.ShortName)
	assert.Equal(t, "Probabilistic", md.Header.Type)
	require.Len(t, md.Header.Images, 1)
	assert.Equal(t, "/HarvardOxford/HarvardOxford-cort-prob-2mm", md.Header.Images[0].ImageFile)
}

func TestParse_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<atlas><data><label index=\"3\">Cing\xfclate Gyrus</label></data></atlas>"
	md, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Cing\u00fclate Gyrus", md.Labels[0].Text)
}

func TestParse_DocumentOrder(t *testing.T) {
	md, err := Parse(strings.NewReader(`<atlas><data>
		<label index="7">Seven</label>
		<label index="2">Two</label>
		<label index=" 10 ">Ten</label>
	</data></atlas>`))
	require.NoError(t, err)
	require.Len(t, md.Labels, 3)
	assert.Equal(t, 7, md.Labels[0].Index)
	assert.Equal(t, 2, md.Labels[1].Index)
	assert.Equal(t, 10, md.Labels[2].Index)
}

func TestParse_EmptyContainer(t *testing.T) {
	for _, doc := range []string{
		`<atlas><data></data></atlas>`,
		`<atlas><data/></atlas>`,
		`<atlas><header><name>x</name></header><data>  </data></atlas>`,
	} {
		md, err := Parse(strings.NewReader(doc))
		require.NoError(t, err, doc)
		assert.NotNil(t, md.Labels)
		assert.Empty(t, md.Labels)
	}
}

func TestParse_OnlyDirectChildren(t *testing.T) {
	md, err := Parse(strings.NewReader(`<atlas>
		<header><data><label index="9">Nested</label></data></header>
		<data>
			<label index="1">Direct</label>
			<group><label index="3">Grouped</label></group>
		</data>
		<data><label index="4">Second container</label></data>
	</atlas>`))
	require.NoError(t, err)
	assert.Equal(t, []Label{{Index: 1, Text: "Direct"}}, md.Labels)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		cause error
	}{
		{"malformed", `<atlas><data><label index="1">x</data></atlas>`, nil},
		{"empty document", ``, nil},
		{"no data container", `<atlas><header/></atlas>`, ErrNoDataElement},
		{"data nested only", `<atlas><header><data/></header></atlas>`, ErrNoDataElement},
		{"missing index", `<atlas><data><label>x</label></data></atlas>`, ErrMissingIndex},
		{"non-integer index", `<atlas><data><label index="one">x</label></data></atlas>`, nil},
		{"negative index", `<atlas><data><label index="-1">x</label></data></atlas>`, nil},
		{"duplicate index", `<atlas><data><label index="1">a</label><label index="01">b</label></data></atlas>`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			require.Error(t, err)
			var perr *ParseError
			assert.True(t, errors.As(err, &perr), "want ParseError, got %T", err)
			if tt.cause != nil {
				assert.ErrorIs(t, err, tt.cause)
			}
		})
	}
}

func TestReadLabels(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads file", func(t *testing.T) {
		path := filepath.Join(dir, "atlas.xml")
		require.NoError(t, os.WriteFile(path, []byte(`<atlas><data><label index="1">Frontal Pole</label></data></atlas>`), 0o644))
		md, err := ReadLabels(path)
		require.NoError(t, err)
		assert.Equal(t, []Label{{Index: 1, Text: "Frontal Pole"}}, md.Labels)
	})

	t.Run("missing file", func(t *testing.T) {
		path := filepath.Join(dir, "missing.xml")
		_, err := ReadLabels(path)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, path, perr.Path)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("path attached to parse failures", func(t *testing.T) {
		path := filepath.Join(dir, "bad.xml")
		require.NoError(t, os.WriteFile(path, []byte(`<atlas/>`), 0o644))
		_, err := ReadLabels(path)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, path, perr.Path)
		assert.Contains(t, err.Error(), path)
	})
}
