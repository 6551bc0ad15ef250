package rangesum

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const smallEncoding int32 = 1

// AsBytes serializes the tree into a byte slice: an encoding tag, the
// logical length and then every current element value, all BigEndian.
// Pending deltas are resolved while collecting the values, so the
// snapshot captures logical content only; a tree restored from it
// answers every query identically.
func (t *Tree) AsBytes() ([]byte, error) {
	buffer := new(bytes.Buffer)

	err := binary.Write(buffer, binary.BigEndian, smallEncoding)
	if err != nil {
		return nil, err
	}

	err = binary.Write(buffer, binary.BigEndian, int32(t.length))
	if err != nil {
		return nil, err
	}

	values := make([]int32, 0, t.length)
	t.collect(1, t.length, 1, &values)

	err = binary.Write(buffer, binary.BigEndian, values)
	if err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// FromBytes reads a serialized tree from buf and rebuilds it. The
// given options are applied to the new tree.
func FromBytes(buf *bytes.Reader, options ...treeOption) (*Tree, error) {
	var encoding int32
	err := binary.Read(buf, binary.BigEndian, &encoding)
	if err != nil {
		return nil, err
	}

	if encoding != smallEncoding {
		return nil, fmt.Errorf("Unsupported encoding version: %d", encoding)
	}

	var length int32
	err = binary.Read(buf, binary.BigEndian, &length)
	if err != nil {
		return nil, err
	}

	if length <= 0 {
		return nil, fmt.Errorf("Invalid serialized length: %d", length)
	}

	values := make([]int32, length)
	err = binary.Read(buf, binary.BigEndian, values)
	if err != nil {
		return nil, err
	}

	return FromSlice(values, options...)
}

// collect appends the current value of every element in [cl, cr] to
// out, pushing pending deltas down on the way.
func (t *Tree) collect(cl, cr, p int, out *[]int32) {
	if cl == cr {
		*out = append(*out, t.nodes[p])
		return
	}

	t.pushDown(p, int32(cr-cl+1))

	mid := cl + (cr-cl)/2
	t.collect(cl, mid, 2*p, out)
	t.collect(mid+1, cr, 2*p+1, out)
}
