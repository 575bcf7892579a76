package taxmap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_HeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write("metaxa2_mitochondria_0", "k__Bacteria; s__Homo sapiens"))
	require.NoError(t, w.Write("metaxa2_mitochondria_1", "k__Bacteria; s__Mus musculus"))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"Feature ID\tTaxon\n"+
			"metaxa2_mitochondria_0\tk__Bacteria; s__Homo sapiens\n"+
			"metaxa2_mitochondria_1\tk__Bacteria; s__Mus musculus\n",
		buf.String())
}

func TestWriter_EmptyMappingStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Flush())

	assert.Equal(t, "Feature ID\tTaxon\n", buf.String())
}

func TestWriter_TaxonFieldSanitised(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write("phytoref_chloroplast_0", "s__Homo\tsapiens\nvar x"))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		"Feature ID\tTaxon\nphytoref_chloroplast_0\ts__Homo sapiens var x\n",
		buf.String())
}
