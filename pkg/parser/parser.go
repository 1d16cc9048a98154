/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: Line-oriented parser for MATLAB-style .fis files. The file is split into
[System], [InputN], [OutputN], and [Rules] blocks, then each block is handed to its builder in
a fixed order. Any validation failure aborts the parse; a malformed file yields no System.
*/

package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kleascm/sugeno-fis/pkg/fis"
	"github.com/sirupsen/logrus"
)

// ParseError locates a failure in the source. It unwraps to one of the fis error sentinels.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Option configures a parse
type Option func(*parser)

// WithLogger traces block processing at debug level
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *parser) {
		if l != nil {
			p.log = l
		}
	}
}

type blockKind int

const (
	blockSystem blockKind = iota
	blockInput
	blockOutput
	blockRules
)

type line struct {
	no   int
	text string
}

type block struct {
	kind   blockKind
	header string
	no     int
	lines  []line
}

type parser struct {
	source  string
	log     logrus.FieldLogger
	system  *block
	inputs  []*block
	outputs []*block
	rules   *block
	builder *fis.Builder
}

// ParseFile reads and parses the .fis file at path
func ParseFile(path string, opts ...Option) (*fis.System, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fis file: %w", err)
	}
	defer f.Close()
	return Parse(f, path, opts...)
}

// Parse reads a .fis description from r. source names the input in errors.
func Parse(r io.Reader, source string, opts ...Option) (*fis.System, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	p := &parser{
		source:  source,
		log:     discard,
		builder: fis.NewBuilder(source),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithField("source", source)

	if err := p.split(r); err != nil {
		return nil, err
	}
	return p.assemble()
}

func (p *parser) fail(no int, err error) error {
	return &ParseError{Source: p.source, Line: no, Err: err}
}

// split streams the source into blocks without interpreting their contents
func (p *parser) split(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	var current *block
	no := 0

	for scanner.Scan() {
		no++
		text := strings.TrimSpace(strings.TrimRight(scanner.Text(), "\r"))
		if text == "" || strings.HasPrefix(text, "%") || strings.HasPrefix(text, "#") {
			continue
		}

		if strings.HasPrefix(text, "[") {
			b, err := p.open(text, no)
			if err != nil {
				return p.fail(no, err)
			}
			current = b
			continue
		}

		if current == nil {
			return p.fail(no, fmt.Errorf("%w: %q appears before any block header", fis.ErrFormat, text))
		}
		current.lines = append(current.lines, line{no: no, text: text})
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", p.source, err)
	}

	if p.system == nil {
		return p.fail(0, fmt.Errorf("%w: no [System] block", fis.ErrFormat))
	}
	return nil
}

// open starts the block named by a header line
func (p *parser) open(header string, no int) (*block, error) {
	if !strings.HasSuffix(header, "]") {
		return nil, fmt.Errorf("%w: unterminated block header %q", fis.ErrFormat, header)
	}
	name := strings.TrimSpace(header[1 : len(header)-1])

	switch {
	case name == "System":
		if p.system != nil {
			return nil, fmt.Errorf("%w: duplicate [System] block", fis.ErrFormat)
		}
		p.system = &block{kind: blockSystem, header: name, no: no}
		return p.system, nil

	case name == "Rules":
		if p.rules != nil {
			return nil, fmt.Errorf("%w: duplicate [Rules] block", fis.ErrFormat)
		}
		p.rules = &block{kind: blockRules, header: name, no: no}
		return p.rules, nil

	case strings.HasPrefix(name, "Input"):
		n, err := sectionNumber(name, "Input")
		if err != nil {
			return nil, err
		}
		if n != len(p.inputs)+1 {
			return nil, fmt.Errorf("%w: [%s] is not ordered, expected [Input%d]", fis.ErrFormat, name, len(p.inputs)+1)
		}
		b := &block{kind: blockInput, header: name, no: no}
		p.inputs = append(p.inputs, b)
		return b, nil

	case strings.HasPrefix(name, "Output"):
		n, err := sectionNumber(name, "Output")
		if err != nil {
			return nil, err
		}
		if n != len(p.outputs)+1 {
			return nil, fmt.Errorf("%w: [%s] is not ordered, expected [Output%d]", fis.ErrFormat, name, len(p.outputs)+1)
		}
		b := &block{kind: blockOutput, header: name, no: no}
		p.outputs = append(p.outputs, b)
		return b, nil
	}

	return nil, fmt.Errorf("%w: unknown block [%s]", fis.ErrFormat, name)
}

func sectionNumber(name, prefix string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, prefix))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: unknown block [%s]", fis.ErrFormat, name)
	}
	return n, nil
}

// assemble processes the blocks in fixed order and builds the System
func (p *parser) assemble() (*fis.System, error) {
	if err := p.parseSystem(p.system); err != nil {
		return nil, err
	}
	p.log.WithFields(logrus.Fields{
		"type":        p.builder.Type(),
		"num_inputs":  p.builder.NumInputs(),
		"num_outputs": p.builder.NumOutputs(),
	}).Debug("parsed [System] block")

	for i, b := range p.inputs {
		v, err := p.parseVariable(b, fis.RoleInput, i)
		if err != nil {
			return nil, err
		}
		p.builder.AddInput(v)
	}
	for i, b := range p.outputs {
		v, err := p.parseVariable(b, fis.RoleOutput, i)
		if err != nil {
			return nil, err
		}
		p.builder.AddOutput(v)
	}

	if p.rules != nil {
		if err := p.parseRules(p.rules); err != nil {
			return nil, err
		}
	}

	sys, err := p.builder.Build()
	if err != nil {
		return nil, p.fail(0, err)
	}
	p.log.WithFields(logrus.Fields{
		"name":  sys.Name(),
		"rules": sys.NumRules(),
	}).Debug("fis system assembled")
	return sys, nil
}

// keyValue splits a Key=Value line
func keyValue(l line) (string, string, error) {
	key, value, ok := strings.Cut(l.text, "=")
	if !ok {
		return "", "", fmt.Errorf("%w: expected Key=Value, got %q", fis.ErrFormat, l.text)
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), nil
}

func unquote(s string) string {
	return strings.ReplaceAll(s, "'", "")
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(unquote(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q is not an integer", fis.ErrType, key, value)
	}
	return n, nil
}

// parseFloatList parses a bracketed whitespace-separated list such as [0 2.5 5]
func parseFloatList(key, value string) ([]float64, error) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "[") || !strings.HasSuffix(value, "]") {
		return nil, fmt.Errorf("%w: %s=%q is not a bracketed list", fis.ErrType, key, value)
	}
	fields := strings.Fields(value[1 : len(value)-1])
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s contains non-numeric value %q", fis.ErrType, key, f)
		}
		out = append(out, v)
	}
	return out, nil
}
