package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/google/uuid"
)

// Serializable is sent as the body of a request.
type Serializable interface {
	Serialize() ([]byte, error)
}

// GenerateUUID returns a random, version 4 uuid.
func GenerateUUID() string {
	return uuid.New().String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}

	return
}

func GetUrlQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) > 0 {
		return v
	}

	return defaultValue
}

func InStringArray(a []string, s string) (index int, found bool) {
	var h string
	for index, h = range a {
		found = h == s
		if found {
			return
		}
	}

	index = -1
	return
}

//
// Function to wrap calls to `json.Unmarshall` that cannot fail
//
// This function should only be used when doing calls that cannot fails,
// e.g. reading the content of the on-disk storage which was serialized by
// herehere. It ensures no silent corruption of data can happen
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

// JSONMarshalWithoutEscapeHTML keeps `<`, `>` and `&` as is; statements and
// urls are stored exactly as submitted.
func JSONMarshalWithoutEscapeHTML(o interface{}) ([]byte, error) {
	buffer := &bytes.Buffer{}
	encoder := json.NewEncoder(buffer)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(o); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buffer.Bytes(), "\n"), nil
}

func EncodeJSONValue(v interface{}) ([]byte, error) {
	return JSONMarshalWithoutEscapeHTML(v)
}

// SequenceKey formats `i` with a fixed width, so the lexicographic order of
// storage keys follows the numeric order.
func SequenceKey(i uint64) string {
	return fmt.Sprintf("%020d", i)
}

func ParseSequenceKey(s string) (uint64, error) {
	return strconv.ParseUint(s, 10, 64)
}
