package gif

import "fmt"

// UnmarshalBinary fills v from packed RGB triples. v must already have the
// right length.
func (v ColorTable) UnmarshalBinary(data []byte) error {
	if len(v)*3 != len(data) {
		return fmt.Errorf("len is not valid. required: %d, actual: %d", len(v)*3, len(data))
	}
	for i := 0; i < len(v); i++ {
		v[i].Red = data[i*3]
		v[i].Green = data[i*3+1]
		v[i].Blue = data[i*3+2]
	}
	return nil
}

func (v ColorTable) MarshalBinary() ([]byte, error) {
	data := make([]byte, len(v)*3)

	for i := 0; i < len(v); i++ {
		data[i*3] = v[i].Red
		data[i*3+1] = v[i].Green
		data[i*3+2] = v[i].Blue
	}

	return data, nil
}

// SizeExponent is the packed-field size exponent describing this table.
func (v ColorTable) SizeExponent() byte {
	return TableSizeExponent(len(v))
}
