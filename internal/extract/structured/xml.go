package structured

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/profitcalc/profitcalc/internal/common"
	"github.com/profitcalc/profitcalc/internal/model"
)

// XMLExtractor handles markup exports. The document is decoded into the
// same generic map/list tree the JSON extractor consumes: attributes are
// merged in as plain keys, repeated sibling elements collapse into lists,
// and text-only elements become strings.
type XMLExtractor struct{}

func NewXMLExtractor() *XMLExtractor {
	return &XMLExtractor{}
}

func (e *XMLExtractor) Extract(_ context.Context, data []byte) ([]model.RawRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, common.WrapError(common.ErrEmptyInput, "empty xml document")
	}
	tree, err := decodeTree(data)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}
	if tree == nil {
		return nil, common.WrapError(common.ErrEmptyInput, "xml document has no elements")
	}

	elems, ok := locate(tree)
	if !ok {
		return nil, common.WrapError(common.ErrNoTransactions, "xml")
	}
	return mapRecords(elems, "xml")
}

// decodeTree turns an XML document into a map keyed by the document
// element's name, so `<transactions><transaction>` trees line up with the
// conventional nesting paths the locator tries.
func decodeTree(data []byte) (any, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, nil
			}
			return nil, err
		}
		if start, ok := tok.(xml.StartElement); ok {
			root, err := decodeElement(dec, start)
			if err != nil {
				return nil, err
			}
			return map[string]any{start.Name.Local: root}, nil
		}
	}
}

// decodeElement consumes one element and its subtree. Leaf elements with
// only character data become strings; anything else becomes a map with
// repeated child names collapsed into []any.
func decodeElement(dec *xml.Decoder, start xml.StartElement) (any, error) {
	node := map[string]any{}
	for _, attr := range start.Attr {
		node[attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := decodeElement(dec, t)
			if err != nil {
				return nil, err
			}
			addChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			content := strings.TrimSpace(text.String())
			if len(node) == 0 {
				return content, nil
			}
			if content != "" {
				node["#text"] = content
			}
			return node, nil
		}
	}
}

func addChild(node map[string]any, name string, child any) {
	existing, ok := node[name]
	if !ok {
		node[name] = child
		return
	}
	if list, ok := existing.([]any); ok {
		node[name] = append(list, child)
		return
	}
	node[name] = []any{existing, child}
}
