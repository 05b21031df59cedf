package neuralpp

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blacklight/neuralpp/activations"
	"github.com/blacklight/neuralpp/initializers"
)

func weights(net *Network) []float64 {
	syns := net.Synapses()
	ws := make([]float64, len(syns))
	for i := range syns {
		ws[i] = syns[i].Weight()
	}

	return ws
}

func TestSaveLoadRoundTrip(t *testing.T) {
	net, err := New(3, 4, 2, 0.05, 100, WithThreshold(0.125), WithActivation(activations.Tanh()),
		WithRNG(initializers.Normal(initializers.NewSource(8)).SD(3)))
	require.NoError(t, err)

	// weights that need every digit
	require.NoError(t, net.SetWeight(0, math.Pi))
	require.NoError(t, net.SetWeight(1, -1.0/3))
	require.NoError(t, net.SetWeight(2, 5e-300))

	path := filepath.Join(t.TempDir(), "net.xml")
	require.NoError(t, net.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, net.InputSize(), loaded.InputSize())
	assert.Equal(t, net.HiddenSize(), loaded.HiddenSize())
	assert.Equal(t, net.OutputSize(), loaded.OutputSize())
	assert.Equal(t, net.Epochs(), loaded.Epochs())
	assert.Equal(t, net.LearningRate(), loaded.LearningRate())
	assert.Equal(t, net.Threshold(), loaded.Threshold())
	assert.Equal(t, "tanh", loaded.Activation().TypeString())
	assert.Equal(t, weights(net), weights(loaded))

	input := []float64{0.5, -2, 1}
	require.NoError(t, net.SetInput(input))
	require.NoError(t, loaded.SetInput(input))
	net.Propagate()
	loaded.Propagate()
	assert.Equal(t, net.Outputs(), loaded.Outputs())
}

func TestSaveLoadTrained(t *testing.T) {
	net, err := New(2, 2, 1, 0.005, 500, WithSeed(33))
	require.NoError(t, err)
	require.NoError(t, net.Train(adderSets()))

	var buf bytes.Buffer
	_, err = net.WriteTo(&buf)
	require.NoError(t, err)

	loaded, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, weights(net), weights(loaded))

	for _, n := range []*Network{net, loaded} {
		require.NoError(t, n.SetInput([]float64{4, 1}))
		n.Propagate()
	}
	assert.Equal(t, net.Output(), loaded.Output())
}

func TestFromDocument(t *testing.T) {
	net, err := New(1, 2, 1, 0.1, 3, WithSeed(2))
	require.NoError(t, err)

	loaded, err := FromDocument(net.Document())
	require.NoError(t, err)
	assert.Equal(t, weights(net), weights(loaded))
	assert.Equal(t, Idle, loaded.State())
}

func TestIOErrorMessage(t *testing.T) {
	err := &IOError{Op: "read", Err: errors.New("broken pipe")}
	assert.Equal(t, "Can't read: broken pipe", err.Error())

	err.Path = "net.xml"
	assert.Equal(t, `Can't read "net.xml": broken pipe`, err.Error())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nothing.xml"))

	var ioe *IOError
	require.True(t, errors.As(err, &ioe))
	var fe *FormatError
	assert.False(t, errors.As(err, &fe))
}

func TestSaveUnwritable(t *testing.T) {
	net, err := New(1, 1, 1, 0.1, 1, WithSeed(1))
	require.NoError(t, err)

	err = net.Save(filepath.Join(t.TempDir(), "missing", "dir", "net.xml"))
	var ioe *IOError
	assert.True(t, errors.As(err, &ioe))
}

const validDoc = `<?xml version="1.0" encoding="UTF-8"?>
<neuralnet version="1" epochs="10" learning-rate="0.5" threshold="0" activation="identity">
  <layers input="2" hidden="1" output="1"/>
  <synapses from="input" to="hidden">
    <synapse source="0" destination="0" weight="0.25"/>
    <synapse source="1" destination="0" weight="0.75"/>
  </synapses>
  <synapses from="hidden" to="output">
    <synapse source="0" destination="0" weight="2"/>
  </synapses>
</neuralnet>`

func TestReadValid(t *testing.T) {
	net, err := Read(strings.NewReader(validDoc))
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.75, 2}, weights(net))
	assert.Equal(t, 0.5, net.LearningRate())
	assert.Equal(t, 10, net.Epochs())

	require.NoError(t, net.SetInput([]float64{4, 4}))
	net.Propagate()
	assert.Equal(t, 8.0, net.Output())
}

func TestReadMalformed(t *testing.T) {
	cases := map[string]string{
		"markup":            `<neuralnet><layers></neuralnet>`,
		"no root":           `<network/>`,
		"version":           strings.Replace(validDoc, `version="1"`, `version="7"`, 1),
		"no epochs":         strings.Replace(validDoc, `epochs="10"`, ``, 1),
		"bad rate":          strings.Replace(validDoc, `learning-rate="0.5"`, `learning-rate="fast"`, 1),
		"infinite rate":     strings.Replace(validDoc, `learning-rate="0.5"`, `learning-rate="+Inf"`, 1),
		"negative epochs":   strings.Replace(validDoc, `epochs="10"`, `epochs="-1"`, 1),
		"no threshold":      strings.Replace(validDoc, `threshold="0"`, ``, 1),
		"activation":        strings.Replace(validDoc, `activation="identity"`, `activation="nope"`, 1),
		"no layers":         strings.Replace(validDoc, `<layers input="2" hidden="1" output="1"/>`, ``, 1),
		"no hidden size":    strings.Replace(validDoc, `hidden="1"`, ``, 1),
		"zero output size":  strings.Replace(validDoc, `output="1"/>`, `output="0"/>`, 1),
		"size mismatch":     strings.Replace(validDoc, `input="2"`, `input="3"`, 1),
		"source range":      strings.Replace(validDoc, `source="1" destination="0"`, `source="2" destination="0"`, 1),
		"destination range": strings.Replace(validDoc, `source="1" destination="0"`, `source="1" destination="1"`, 1),
		"duplicate synapse": strings.Replace(validDoc, `source="1" destination="0"`, `source="0" destination="0"`, 1),
		"bad weight":        strings.Replace(validDoc, `weight="2"`, `weight="two"`, 1),
		"missing weight":    strings.Replace(validDoc, ` weight="2"`, ``, 1),
		"unknown block":     strings.Replace(validDoc, `from="hidden" to="output"`, `from="output" to="input"`, 1),
		"duplicate block":   strings.Replace(validDoc, `from="hidden" to="output"`, `from="input" to="hidden"`, 1),
		"missing block":     validDoc[:strings.LastIndex(validDoc, "<synapses")] + "</neuralnet>",
	}

	// sizes that would need huge allocations, with empty synapse blocks
	huge := `<neuralnet epochs="1" learning-rate="0.1" threshold="0"><layers input="%s" hidden="%s" output="1"/>` +
		`<synapses from="input" to="hidden"/><synapses from="hidden" to="output"/></neuralnet>`
	cases["huge input"] = fmt.Sprintf(huge, "1099511627776", "1")
	cases["overflowing sizes"] = fmt.Sprintf(huge, "4294967296", "4294967296")

	for name, doc := range cases {
		_, err := Read(strings.NewReader(doc))
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "%s: %v", name, err)

		var ioe *IOError
		assert.False(t, errors.As(err, &ioe), name)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(validDoc))
	doc.FindElement("//layers").RemoveAttr("input")

	path := filepath.Join(t.TempDir(), "net.xml")
	require.NoError(t, doc.WriteToFile(path))

	_, err := Load(path)
	var fe *FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, path, fe.Source)
	assert.Contains(t, fe.Error(), `"input"`)
}
