package gif

import "fmt"

// Extension is an extension block kept as an opaque payload: the label byte
// and the concatenation of its sub-blocks.
type Extension struct {
	Label byte
	Data  []byte
}

// Kind names the well-known extension labels.
func (e *Extension) Kind() string {
	switch e.Label {
	case ePlainText:
		return "PlainText"
	case eGraphicControl:
		return "GraphicControl"
	case eComment:
		return "Comment"
	case eApplication:
		return "Application"
	default:
		return fmt.Sprintf("Extension(0x%02x)", e.Label)
	}
}

func readExtension(src ByteSource) (*Extension, error) {
	label, err := readByte(src, "extension label")
	if err != nil {
		return nil, err
	}
	data, err := NewBlockReader(src).ReadAll()
	if err != nil {
		return nil, err
	}
	return &Extension{Label: label, Data: data}, nil
}
