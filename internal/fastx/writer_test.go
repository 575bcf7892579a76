package fastx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_SingleLineSequences(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write("metaxa2_mitochondria_0", []byte("ACGT")))
	require.NoError(t, w.Write("phytoref_chloroplast_0", []byte("TTGGCCAA")))
	require.NoError(t, w.Flush())

	assert.Equal(t,
		">metaxa2_mitochondria_0\nACGT\n>phytoref_chloroplast_0\nTTGGCCAA\n",
		buf.String())
}

func TestWriter_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.Write("a header", []byte("ACGTNN")))
	require.NoError(t, w.Flush())

	recs := collect(t, buf.String())
	require.Len(t, recs, 1)
	assert.Equal(t, "a header", recs[0].Description)
	assert.Equal(t, "ACGTNN", string(recs[0].Seq))
}
