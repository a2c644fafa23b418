package atlas

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/htmlindex"
)

// Sentinel causes wrapped by ParseError.
var (
	ErrNoDataElement = errors.New("no <data> element under the document root")
	ErrMissingIndex  = errors.New("label has no index attribute")
)

// --- XML wire types ---

type xmlDocument struct {
	XMLName xml.Name
	Header  []xmlHeader `xml:"header"`
	Data    []xmlData   `xml:"data"`
}

type xmlHeader struct {
	Name      string     `xml:"name"`
	ShortName string     `xml:"shortname"`
	Type      string     `xml:"type"`
	Images    []xmlImage `xml:"images"`
}

type xmlImage struct {
	ImageFile        string `xml:"imagefile"`
	SummaryImageFile string `xml:"summaryimagefile"`
}

type xmlData struct {
	Labels []xmlLabel `xml:"label"`
}

type xmlLabel struct {
	Index *string `xml:"index,attr"`
	Text  string  `xml:",chardata"`
}

// ReadLabels opens and parses the atlas document at path.
func ReadLabels(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(&ParseError{Path: path, Err: err})
	}
	defer f.Close()

	md, err := Parse(f)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = path
		}
		return nil, err
	}
	return md, nil
}

// Parse decodes an atlas document. Only the first <data> child of the root
// is considered, and only its direct <label> children, in document order.
// A <data> element with no labels yields an empty label list.
func Parse(r io.Reader) (*Metadata, error) {
	var doc xmlDocument
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.WithStack(&ParseError{Err: err})
	}
	if len(doc.Data) == 0 {
		return nil, errors.WithStack(&ParseError{Err: ErrNoDataElement})
	}

	md := &Metadata{Labels: make([]Label, 0, len(doc.Data[0].Labels))}
	if len(doc.Header) > 0 {
		md.Header = convertHeader(doc.Header[0])
	}

	seen := make(map[int]int, len(doc.Data[0].Labels))
	for i, xl := range doc.Data[0].Labels {
		idx, err := parseIndex(xl.Index)
		if err != nil {
			return nil, errors.WithStack(&ParseError{Err: errors.Wrapf(err, "label #%d", i+1)})
		}
		if prev, dup := seen[idx]; dup {
			return nil, errors.WithStack(&ParseError{
				Err: errors.Errorf("label #%d: duplicate index %d (first used by label #%d)", i+1, idx, prev+1),
			})
		}
		seen[idx] = i
		md.Labels = append(md.Labels, Label{Index: idx, Text: xl.Text})
	}
	return md, nil
}

// charsetReader lets the decoder accept the ISO-8859-1 declaration FSL ships
// its atlas files with.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, errors.Wrapf(err, "charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// parseIndex reads a non-negative integer index attribute.
func parseIndex(raw *string) (int, error) {
	if raw == nil {
		return 0, ErrMissingIndex
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		return 0, errors.Errorf("index %q is not an integer", *raw)
	}
	if n < 0 {
		return 0, errors.Errorf("index %d is negative", n)
	}
	return n, nil
}

func convertHeader(h xmlHeader) Header {
	out := Header{
		Name:      strings.TrimSpace(h.Name),
		ShortName: strings.TrimSpace(h.ShortName),
		Type:      strings.TrimSpace(h.Type),
	}
	for _, img := range h.Images {
		out.Images = append(out.Images, Image{
			ImageFile:        strings.TrimSpace(img.ImageFile),
			SummaryImageFile: strings.TrimSpace(img.SummaryImageFile),
		})
	}
	return out
}
