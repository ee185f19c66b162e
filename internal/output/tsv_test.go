package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porthodom/internal/matching"
	nbh "porthodom/internal/neighborhood"
	"porthodom/internal/porthodom"
)

func hood(t *testing.T, acc string, prots ...[3]string) *nbh.Neighborhood {
	t.Helper()
	n := nbh.New(acc, "Org "+acc)
	for _, p := range prots {
		require.NoError(t, n.AddProtein(p[0], p[1], p[2]))
	}
	return n
}

func sampleSingle(t *testing.T) porthodom.Comparison {
	a := hood(t, "NC_1", [3]string{"l1", "WP_1", "10..90"}, [3]string{"l2", "WP_2", "100..300"})
	b := hood(t, "NC_2", [3]string{"m1", "WP_3", "5..50"}, [3]string{"m2", "WP_4", "60..70"})
	return porthodom.Comparison{A: a, B: b, Result: porthodom.Result{
		Variant:    porthodom.VariantSingle,
		Assignment: matching.Assignment{{Row: 0, Col: 0, Utility: 90}, {Row: 1, Col: 1, Utility: 80}},
		Normalizer: 2,
		Score:      0.85,
	}}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "0.85", FormatFloat(0.85))
	assert.Equal(t, "1", FormatFloat(1))
	assert.Equal(t, "0", FormatFloat(0))
	assert.Equal(t, "0.333333", FormatFloat(1.0/3))
	assert.Equal(t, "1e-05", FormatFloat(0.00001))
}

func TestWriteScoreTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteScoreTSV(&buf, sampleSingle(t)))
	assert.Equal(t, "NC_1\t10\t300\tNC_2\t5\t70\t0.85\n", buf.String())
}

func TestWritePairingsTSV_Single(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePairingsTSV(&buf, sampleSingle(t)))
	assert.Equal(t, ">NC_1\t10\t300\tNC_2\t5\t70\nWP_1\tWP_3\t0.9\nWP_2\tWP_4\t0.8\n", buf.String())
}

func TestWritePairingsTSV_Pair(t *testing.T) {
	c := sampleSingle(t)
	c.Variant = porthodom.VariantPair
	c.Assignment = matching.Assignment{{Row: 0, Col: 0, Utility: 720000}}
	c.Normalizer = 1
	var buf bytes.Buffer
	require.NoError(t, WritePairingsTSV(&buf, c))
	assert.Equal(t, ">NC_1\t10\t300\tNC_2\t5\t70\nWP_1\tWP_2\tWP_3\tWP_4\t0.72\n", buf.String())
}

func TestWritePairingsTSV_BadIndex(t *testing.T) {
	c := sampleSingle(t)
	c.Assignment = matching.Assignment{{Row: 5, Col: 0, Utility: 1}}
	var oor *nbh.IndexOutOfRangeError
	require.ErrorAs(t, WritePairingsTSV(&bytes.Buffer{}, c), &oor)
}

func TestWriteComponents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteComponents(&buf, [][]string{{"a", "b"}, {"c"}}))
	assert.Equal(t, "0\ta\n0\tb\n1\tc\n", buf.String())
}

func TestToAPIComparison(t *testing.T) {
	v, err := ToAPIComparison(sampleSingle(t))
	require.NoError(t, err)
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"method":"porthodom",
		"a":{"accession":"NC_1","organism":"Org NC_1","first_cds":10,"last_cds":300,"proteins":2},
		"b":{"accession":"NC_2","organism":"Org NC_2","first_cds":5,"last_cds":70,"proteins":2},
		"score":0.85,
		"normalizer":2,
		"pairings":[
			{"a":["WP_1"],"b":["WP_3"],"similarity":0.9},
			{"a":["WP_2"],"b":["WP_4"],"similarity":0.8}
		]
	}`, string(raw))
}
