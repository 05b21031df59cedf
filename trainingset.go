package neuralpp

import (
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

// Element names of training documents.
const (
	trainingRoot       = "NETWORK"
	trainingRootAlt    = "TRAINING-COLLECTION"
	trainingElem       = "TRAINING"
	trainingInputElem  = "INPUT"
	trainingOutputElem = "OUTPUT"
	trainingIDAttr     = "ID"
)

// Datum is a single training example: the inputs of the network, and the outputs expected
// for them.
type Datum struct {
	Inputs  []float64
	Outputs []float64
}

// Fits indicates whether or not a given Datum's dimensions match those of the Network, allowing
// it to be used for training.
func (d Datum) Fits(net *Network) bool {
	return len(d.Inputs) == net.InputSize() && len(d.Outputs) == net.OutputSize()
}

// String returns the compact form of d, as accepted by ParseSet.
func (d Datum) String() string {
	return joinFloats(d.Inputs) + ";" + joinFloats(d.Outputs)
}

func joinFloats(vs []float64) string {
	strs := make([]string, len(vs))
	for i, v := range vs {
		strs[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return strings.Join(strs, ",")
}

// Split parses the values in s separated by delim. Surrounding whitespace is ignored. An empty
// string gives no values.
func Split(delim, s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, delim)
	vs := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, &FormatError{Reason: "bad number " + strconv.Quote(p), Err: err}
		}

		vs[i] = v
	}

	return vs, nil
}

// ParseSet parses the compact form of a training example: comma-separated inputs, then a
// semicolon, then comma-separated outputs. For example, "2,3;5".
func ParseSet(set string) (Datum, error) {
	semi := strings.IndexByte(set, ';')
	if semi < 0 {
		return Datum{}, formatErr("", "training set %q has no ';' between inputs and outputs", set)
	}

	in, err := Split(",", set[:semi])
	if err != nil {
		return Datum{}, errors.Wrapf(err, "Bad inputs in training set %q", set)
	}

	out, err := Split(",", set[semi+1:])
	if err != nil {
		return Datum{}, errors.Wrapf(err, "Bad outputs in training set %q", set)
	}

	return Datum{in, out}, nil
}

// NewTrainingDocument returns an empty training document, ready for AppendSet or AppendDatum.
func NewTrainingDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateComment(" neuralpp training set ")
	doc.CreateElement(trainingRoot)
	return doc
}

// AppendSet parses the compact training set and adds it to doc with the given id.
func AppendSet(doc *etree.Document, id int, set string) error {
	d, err := ParseSet(set)
	if err != nil {
		return err
	}

	return AppendDatum(doc, id, d)
}

// AppendDatum adds a training example to doc with the given id.
func AppendDatum(doc *etree.Document, id int, d Datum) error {
	root := trainingRootOf(doc)
	if root == nil {
		return formatErr("", "document has no <%s> element", trainingRoot)
	}

	t := root.CreateElement(trainingElem)
	t.CreateAttr(trainingIDAttr, strconv.Itoa(id))

	for i, v := range d.Inputs {
		e := t.CreateElement(trainingInputElem)
		e.CreateAttr(trainingIDAttr, strconv.Itoa(i))
		e.SetText(strconv.FormatFloat(v, 'g', -1, 64))
	}

	for i, v := range d.Outputs {
		e := t.CreateElement(trainingOutputElem)
		e.CreateAttr(trainingIDAttr, strconv.Itoa(i))
		e.SetText(strconv.FormatFloat(v, 'g', -1, 64))
	}

	return nil
}

// TrainingDocumentString renders doc as indented markup.
func TrainingDocumentString(doc *etree.Document) (string, error) {
	doc.Indent(2)
	return doc.WriteToString()
}

func trainingRootOf(doc *etree.Document) *etree.Element {
	if root := doc.SelectElement(trainingRoot); root != nil {
		return root
	}

	return doc.SelectElement(trainingRootAlt)
}

// ReadTrainingSet returns the training examples in doc, in document order.
//
// Every example needs at least one output. Numbers that don't parse, and a missing root
// element, give a FormatError. A root with no examples is valid and gives none.
func ReadTrainingSet(doc *etree.Document) ([]Datum, error) {
	return readTrainingSet("", doc)
}

func readTrainingSet(source string, doc *etree.Document) ([]Datum, error) {
	root := trainingRootOf(doc)
	if root == nil {
		return nil, formatErr(source, "no <%s> or <%s> element", trainingRoot, trainingRootAlt)
	}

	var data []Datum
	for i, t := range root.SelectElements(trainingElem) {
		in, err := elementValues(source, t.SelectElements(trainingInputElem))
		if err != nil {
			return nil, errors.Wrapf(err, "Bad input of training example %d", i)
		}

		outElems := t.SelectElements(trainingOutputElem)
		if len(outElems) == 0 {
			return nil, formatErr(source, "training example %d has no <%s>", i, trainingOutputElem)
		}

		out, err := elementValues(source, outElems)
		if err != nil {
			return nil, errors.Wrapf(err, "Bad output of training example %d", i)
		}

		data = append(data, Datum{in, out})
	}

	return data, nil
}

func elementValues(source string, elems []*etree.Element) ([]float64, error) {
	vs := make([]float64, len(elems))
	for i, e := range elems {
		text := strings.TrimSpace(e.Text())
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &FormatError{Source: source, Reason: "bad number " + strconv.Quote(text), Err: err}
		}

		vs[i] = v
	}

	return vs, nil
}

// ParseTrainingSet is ReadTrainingSet on a document given as a string.
func ParseTrainingSet(xml string) ([]Datum, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(xml); err != nil {
		return nil, &FormatError{Reason: "malformed markup", Err: err}
	}

	return readTrainingSet("", doc)
}

// LoadTrainingSet is ReadTrainingSet on the document in the file at path. A file that can't be
// read gives an IOError.
func LoadTrainingSet(path string) ([]Datum, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{"read", path, err}
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, &FormatError{Source: path, Reason: "malformed markup", Err: err}
	}

	return readTrainingSet(path, doc)
}

// WriteTrainingSet writes data to a new training document at path, numbering the examples from
// 0.
func WriteTrainingSet(path string, data []Datum) error {
	doc := NewTrainingDocument()
	for i, d := range data {
		if err := AppendDatum(doc, i, d); err != nil {
			return err
		}
	}

	doc.Indent(2)
	b, err := doc.WriteToBytes()
	if err != nil {
		return errors.Wrapf(err, "Failed to render training document for %q", path)
	}

	if err := os.WriteFile(path, b, 0644); err != nil {
		return &IOError{"write", path, err}
	}

	return nil
}
