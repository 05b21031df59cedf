package neuralpp

import (
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/blacklight/neuralpp/activations"
)

// FormatVersion is the version of the saved network document written by Save.
const FormatVersion = "1"

const (
	netRoot     = "neuralnet"
	netLayers   = "layers"
	netSynapses = "synapses"
	netSynapse  = "synapse"
	layerInput  = "input"
	layerHidden = "hidden"
	layerOutput = "output"
)

// Document returns the saved form of the Network: its layer sizes, epoch budget, learning
// rate, threshold, activation function and the weight of every synapse. Propagated values and
// expected outputs are not included.
//
// Weights are written in their shortest exact decimal form, so reading the document back
// gives the same weights bit for bit.
func (net *Network) Document() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement(netRoot)
	root.CreateAttr("version", FormatVersion)
	root.CreateAttr("epochs", strconv.Itoa(net.epochs))
	root.CreateAttr("learning-rate", formatFloat(net.learningRate))
	root.CreateAttr("threshold", formatFloat(net.threshold))
	root.CreateAttr("activation", net.act.TypeString())

	layers := root.CreateElement(netLayers)
	layers.CreateAttr(layerInput, strconv.Itoa(net.input.Size()))
	layers.CreateAttr(layerHidden, strconv.Itoa(net.hidden.Size()))
	layers.CreateAttr(layerOutput, strconv.Itoa(net.output.Size()))

	split := net.input.Size() * net.hidden.Size()
	writeSynapses(root, layerInput, layerHidden, net.synapses[:split])
	writeSynapses(root, layerHidden, layerOutput, net.synapses[split:])

	doc.Indent(2)
	return doc
}

func writeSynapses(root *etree.Element, from, to string, synapses []Synapse) {
	el := root.CreateElement(netSynapses)
	el.CreateAttr("from", from)
	el.CreateAttr("to", to)

	for i := range synapses {
		s := el.CreateElement(netSynapse)
		s.CreateAttr("source", strconv.Itoa(synapses[i].source))
		s.CreateAttr("destination", strconv.Itoa(synapses[i].destination))
		s.CreateAttr("weight", formatFloat(synapses[i].weight))
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// WriteTo writes the Network's Document to w.
func (net *Network) WriteTo(w io.Writer) (int64, error) {
	return net.Document().WriteTo(w)
}

// Save writes the Network's Document to the file at path, replacing any existing file. If the
// file can't be written, the error is an *IOError.
func (net *Network) Save(path string) error {
	b, err := net.Document().WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, "Failed to render network for %q", path)
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return &IOError{"write", path, err}
	}

	net.logger.Info("saved network", zap.String("path", path), zap.Int("synapses", len(net.synapses)))
	return nil
}

// Load returns the Network saved at path. A file that can't be read gives an *IOError; a file
// whose content is not a valid saved network gives a *FormatError.
//
// The options are applied before those stored in the document, so the threshold and
// activation function always come from the document. Options such as WithLogger still apply.
func Load(path string, opts ...Option) (*Network, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{"read", path, err}
	}

	net, err := fromBytes(path, b, opts)
	if err != nil {
		return nil, err
	}

	net.logger.Info("loaded network", zap.String("path", path), zap.Int("synapses", len(net.synapses)))
	return net, nil
}

// Read is like Load, but reads the document from r.
func Read(r io.Reader, opts ...Option) (*Network, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}

	return fromBytes("", b, opts)
}

func fromBytes(source string, b []byte, opts []Option) (*Network, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, &FormatError{Source: source, Reason: "malformed markup", Err: err}
	}

	return fromDocument(source, doc, opts)
}

// FromDocument is like Load, but takes an already parsed document.
func FromDocument(doc *etree.Document, opts ...Option) (*Network, error) {
	return fromDocument("", doc, opts)
}

func fromDocument(source string, doc *etree.Document, opts []Option) (*Network, error) {
	root := doc.SelectElement(netRoot)
	if root == nil {
		return nil, formatErr(source, "no <%s> element", netRoot)
	}

	if v := root.SelectAttr("version"); v != nil && v.Value != FormatVersion {
		return nil, formatErr(source, "unsupported version %q", v.Value)
	}

	epochs, err := intAttr(source, root, "epochs")
	if err != nil {
		return nil, err
	}

	rate, err := floatAttr(source, root, "learning-rate")
	if err != nil {
		return nil, err
	}

	threshold, err := floatAttr(source, root, "threshold")
	if err != nil {
		return nil, err
	}

	act := activations.Activation(activations.Identity())
	if a := root.SelectAttr("activation"); a != nil {
		var ok bool
		if act, ok = activations.Get(a.Value); !ok {
			return nil, formatErr(source, "unknown activation function %q", a.Value)
		}
	}

	layers := root.SelectElement(netLayers)
	if layers == nil {
		return nil, formatErr(source, "no <%s> element", netLayers)
	}

	var sizes [3]int
	for i, name := range []string{layerInput, layerHidden, layerOutput} {
		if sizes[i], err = intAttr(source, layers, name); err != nil {
			return nil, err
		} else if sizes[i] < 1 {
			return nil, formatErr(source, "%s layer size must be positive, got %d", name, sizes[i])
		}
	}

	if epochs < 0 {
		return nil, formatErr(source, "epoch budget must not be negative, got %d", epochs)
	} else if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return nil, formatErr(source, "learning rate must be finite, got %v", rate)
	}

	// Blocks and their synapse counts are checked before anything is allocated, so the layer
	// sizes are bounded by the size of the document.
	inHidden, hiddenOut := layerInput+"->"+layerHidden, layerHidden+"->"+layerOutput
	blocks := map[string]*etree.Element{}
	for _, el := range root.SelectElements(netSynapses) {
		from, to := el.SelectAttrValue("from", ""), el.SelectAttrValue("to", "")
		key := from + "->" + to

		if key != inHidden && key != hiddenOut {
			return nil, formatErr(source, "unexpected synapses from %q to %q", from, to)
		} else if blocks[key] != nil {
			return nil, formatErr(source, "synapses from %q to %q given twice", from, to)
		}
		blocks[key] = el
	}

	dims := map[string][2]int{inHidden: {sizes[0], sizes[1]}, hiddenOut: {sizes[1], sizes[2]}}
	for _, key := range []string{inHidden, hiddenOut} {
		el := blocks[key]
		if el == nil {
			return nil, formatErr(source, "missing synapses %s", key)
		}

		d := dims[key]
		got := len(el.SelectElements(netSynapse))
		if want, ok := product(d[0], d[1]); !ok || want != got {
			return nil, formatErr(source, "synapses %s: expected %d x %d, got %d", key, d[0], d[1], got)
		}
	}

	opts = append(opts[:len(opts):len(opts)], WithThreshold(threshold), WithActivation(act))
	net, err := New(sizes[0], sizes[1], sizes[2], rate, epochs, opts...)
	if err != nil {
		return nil, &FormatError{Source: source, Reason: "invalid network", Err: err}
	}

	// Link has already run; only the weights are replaced.
	split := sizes[0] * sizes[1]
	if err := readWeights(source, blocks[inHidden], inHidden, net.synapses[:split], sizes[0], sizes[1]); err != nil {
		return nil, err
	}

	if err := readWeights(source, blocks[hiddenOut], hiddenOut, net.synapses[split:], sizes[1], sizes[2]); err != nil {
		return nil, err
	}

	return net, nil
}

// readWeights sets the weights of arena from the <synapse> children of el. arena holds
// srcSize*dstSize synapses ordered by source then destination, as built by Layer.Link.
func readWeights(source string, el *etree.Element, key string, arena []Synapse, srcSize, dstSize int) error {
	syns := el.SelectElements(netSynapse)
	if len(syns) != len(arena) {
		return formatErr(source, "synapses %s: expected %d (%d x %d), got %d", key, len(arena), srcSize, dstSize, len(syns))
	}

	seen := make([]bool, len(arena))
	for _, s := range syns {
		src, err := intAttr(source, s, "source")
		if err != nil {
			return err
		}

		dst, err := intAttr(source, s, "destination")
		if err != nil {
			return err
		}

		w, err := floatAttr(source, s, "weight")
		if err != nil {
			return err
		}

		if src < 0 || src >= srcSize || dst < 0 || dst >= dstSize {
			return formatErr(source, "synapses %s: index (%d, %d) out of range for %d x %d", key, src, dst, srcSize, dstSize)
		}

		idx := src*dstSize + dst
		if seen[idx] {
			return formatErr(source, "synapses %s: (%d, %d) given twice", key, src, dst)
		}

		seen[idx] = true
		arena[idx].weight = w
	}

	return nil
}

// product returns a*b for positive a and b, or false if it overflows an int.
func product(a, b int) (int, bool) {
	if a > math.MaxInt/b {
		return 0, false
	}

	return a * b, true
}

func intAttr(source string, el *etree.Element, name string) (int, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return 0, formatErr(source, "missing attribute %q on <%s>", name, el.Tag)
	}

	v, err := strconv.Atoi(strings.TrimSpace(a.Value))
	if err != nil {
		return 0, &FormatError{Source: source, Reason: "bad attribute " + strconv.Quote(name) + " on <" + el.Tag + ">", Err: err}
	}

	return v, nil
}

func floatAttr(source string, el *etree.Element, name string) (float64, error) {
	a := el.SelectAttr(name)
	if a == nil {
		return 0, formatErr(source, "missing attribute %q on <%s>", name, el.Tag)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(a.Value), 64)
	if err != nil {
		return 0, &FormatError{Source: source, Reason: "bad attribute " + strconv.Quote(name) + " on <" + el.Tag + ">", Err: err}
	}

	return v, nil
}
