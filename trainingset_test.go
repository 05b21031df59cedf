package neuralpp

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSet(t *testing.T) {
	d, err := ParseSet("2,3;5")
	require.NoError(t, err)
	assert.Equal(t, Datum{[]float64{2, 3}, []float64{5}}, d)
	assert.Equal(t, "2,3;5", d.String())

	d, err = ParseSet(" 0.5 , -1e3 ; 1,2 ")
	require.NoError(t, err)
	assert.Equal(t, Datum{[]float64{0.5, -1000}, []float64{1, 2}}, d)

	for _, bad := range []string{"2,3,5", "2,x;5", "2,3;five", "1,,2;3"} {
		_, err := ParseSet(bad)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "%q: %v", bad, err)
	}
}

func TestSplit(t *testing.T) {
	vs, err := Split(",", "1,2.5,-3")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2.5, -3}, vs)

	vs, err = Split(",", "  ")
	require.NoError(t, err)
	assert.Empty(t, vs)
}

func TestDatumFits(t *testing.T) {
	net, err := New(2, 3, 1, 0.1, 1, WithSeed(1))
	require.NoError(t, err)

	assert.True(t, Datum{[]float64{1, 2}, []float64{3}}.Fits(net))
	assert.False(t, Datum{[]float64{1}, []float64{3}}.Fits(net))
	assert.False(t, Datum{[]float64{1, 2}, nil}.Fits(net))
}

func TestTrainingDocumentRoundTrip(t *testing.T) {
	doc := NewTrainingDocument()
	for i, set := range []string{"2,3;5", "5,6;11", "2,2;4"} {
		require.NoError(t, AppendSet(doc, i, set))
	}

	assert.Error(t, AppendSet(doc, 3, "4,5:9"))

	xml, err := TrainingDocumentString(doc)
	require.NoError(t, err)
	assert.Contains(t, xml, `<TRAINING ID="1">`)
	assert.Contains(t, xml, `<INPUT ID="1">6</INPUT>`)
	assert.Contains(t, xml, `<OUTPUT ID="0">11</OUTPUT>`)

	data, err := ParseTrainingSet(xml)
	require.NoError(t, err)
	assert.Equal(t, []Datum{
		{[]float64{2, 3}, []float64{5}},
		{[]float64{5, 6}, []float64{11}},
		{[]float64{2, 2}, []float64{4}},
	}, data)
}

func TestParseTrainingSetAltRoot(t *testing.T) {
	data, err := ParseTrainingSet(`<TRAINING-COLLECTION>
		<TRAINING ID="0"><INPUT ID="0"> 1.5 </INPUT><OUTPUT ID="0">3</OUTPUT><OUTPUT ID="1">4</OUTPUT></TRAINING>
	</TRAINING-COLLECTION>`)
	require.NoError(t, err)
	assert.Equal(t, []Datum{{[]float64{1.5}, []float64{3, 4}}}, data)

	data, err = ParseTrainingSet(`<NETWORK></NETWORK>`)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestParseTrainingSetErrors(t *testing.T) {
	docs := []string{
		`<NETWORK><TRAINING></NETWORK>`,
		`<OTHER></OTHER>`,
		`<NETWORK><TRAINING><INPUT>1</INPUT></TRAINING></NETWORK>`,
		`<NETWORK><TRAINING><INPUT>one</INPUT><OUTPUT>1</OUTPUT></TRAINING></NETWORK>`,
		`<NETWORK><TRAINING><INPUT>1</INPUT><OUTPUT></OUTPUT></TRAINING></NETWORK>`,
	}

	for _, doc := range docs {
		_, err := ParseTrainingSet(doc)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "%s: %v", doc, err)
	}
}

func TestTrainingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "adder.xml")

	require.NoError(t, WriteTrainingSet(path, adderSets()))

	data, err := LoadTrainingSet(path)
	require.NoError(t, err)
	assert.Equal(t, adderSets(), data)

	_, err = LoadTrainingSet(filepath.Join(dir, "missing.xml"))
	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	assert.True(t, os.IsNotExist(errors.Cause(ioe.Err)))

	err = WriteTrainingSet(filepath.Join(dir, "no", "such", "dir.xml"), adderSets())
	assert.True(t, errors.As(err, &ioe))

	require.NoError(t, os.WriteFile(path, []byte("<NETWORK><TRAINING>"+strings.Repeat("x", 3)+"</NETWORK>"), 0644))
	_, err = LoadTrainingSet(path)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Source)
}

func TestTrainFromDocuments(t *testing.T) {
	doc := NewTrainingDocument()
	require.NoError(t, AppendSet(doc, 0, "2,3;5"))
	require.NoError(t, AppendSet(doc, 1, "3,2;5"))
	require.NoError(t, AppendSet(doc, 2, "6,2;8"))

	xml, err := TrainingDocumentString(doc)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "adder.xml")
	require.NoError(t, os.WriteFile(path, []byte(xml), 0644))

	train := map[string]func(*Network) error{
		"document": func(net *Network) error { return net.TrainDocument(doc) },
		"string":   func(net *Network) error { return net.TrainString(xml) },
		"file":     func(net *Network) error { return net.TrainFile(path) },
	}

	for name, f := range train {
		net, err := New(2, 2, 1, 0.005, 2000, WithSeed(21))
		require.NoError(t, err)
		require.NoError(t, f(net), name)

		require.NoError(t, net.SetInput([]float64{4, 1}))
		net.Propagate()
		assert.InDelta(t, 5, net.Output(), 1.0, name)
	}

	net, err := New(2, 2, 1, 0.005, 1, WithSeed(21))
	require.NoError(t, err)
	var ioe *IOError
	assert.True(t, errors.As(net.TrainFile(path+".missing"), &ioe))
}
