package dataset

import (
	"strings"
	"testing"

	"github.com/hack-pad/hackpadfs"
	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "id\ts1\ts2\ts3\ts4\n" +
	"class\tctrl\tctrl\ttreated\ttreated\n" +
	"# comment lines are ignored\n" +
	"glc\t10\t10.5\t40\t41\n" +
	"KEGG:C00092\t3\t\tn/a\t1.1\n" +
	"\t1\t2\t3\t4\n" +
	"extra\t1\t2\t3\t4\t99\n"

func TestRead(t *testing.T) {
	d, err := Read(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, []string{"glc", "KEGG:C00092", "extra"}, d.Keys())
	assert.Equal(t, []string{"ctrl", "treated"}, d.Classes())
	assert.Equal(t, []float64{10, 10.5}, d.Values("glc", "ctrl"))
	assert.Equal(t, []float64{40, 41}, d.Values("glc", "treated"))

	// Empty and non-numeric cells are skipped.
	assert.Equal(t, []float64{3}, d.Values("KEGG:C00092", "ctrl"))
	assert.Equal(t, []float64{1.1}, d.Values("KEGG:C00092", "treated"))

	// Cells beyond the header are ignored.
	assert.Equal(t, []float64{3, 4}, d.Values("extra", "treated"))
}

func TestReadMalformed(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"no class row": "id\ts1\n",
		"short class":  "id\ts1\ts2\nclass\tctrl\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoad(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)
	require.NoError(t, hackpadfs.WriteFullFile(fs, "data.tsv", []byte(sample), 0644))

	d, err := Load(fs, "data.tsv")
	require.NoError(t, err)
	assert.Equal(t, 3, d.Len())

	_, err = Load(fs, "missing.tsv")
	assert.Error(t, err)
}
