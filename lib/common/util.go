package common

import (
	"bytes"
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"boscoin.io/minidao/lib/errors"
)

// GetUniqueIDFromUUID returns time based uuid with the timestamp fields
// moved to the front, so the ids made in a row keep their order.
func GetUniqueIDFromUUID() string {
	s := uuid.Must(uuid.NewUUID()).String()

	// time_low-time_mid-time_hi-clock_seq-node
	p := strings.Split(s, "-")
	return strings.Join([]string{p[2], p[1], p[0], p[3], p[4]}, "-")
}

func GenerateUUID() string {
	return uuid.New().String()
}

func GetENVValue(key, defaultValue string) (v string) {
	var found bool
	if v, found = os.LookupEnv(key); !found {
		return defaultValue
	}
	log.Debug("value from environment", "key", key)

	return
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
// e.g. reading the content of the on-disk storage which was serialized by minidao.
// It ensures no silent corruption of data can happen
func MustUnmarshalJSON(data []byte, v interface{}) {
	if err := json.Unmarshal(data, v); err != nil {
		panic(err)
	}
}

func MustMarshalJSON(o interface{}) []byte {
	b, _ := json.Marshal(o)
	return b
}

// JSONMarshalWithoutEscapeHTML keeps '<', '>' and '&' as they are; proposal
// texts are free form.
func JSONMarshalWithoutEscapeHTML(v interface{}) ([]byte, error) {
	buf := new(bytes.Buffer)
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func EncodeJSONValue(v interface{}) ([]byte, error) {
	return JSONMarshalWithoutEscapeHTML(v)
}

func DecodeJSONValue(b []byte, v interface{}) error {
	return json.Unmarshal(b, v)
}

func ParseBoolQueryString(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "":
		return false, nil
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}

	return false, errors.BadRequestParameter.Clone().SetData("value", v)
}

func ParseUint64QueryString(v string) (uint64, error) {
	i, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, errors.BadRequestParameter.Clone().SetData("value", v)
	}

	return i, nil
}

const TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}
