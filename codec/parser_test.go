package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

const taggingRecordCreatedData = "eyJhZGRyZXNzIjoiMHgwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMDAwMEFBIiwiZXZlbnQiOiJUYWdnaW5nUmVjb3JkQ3JlYXRlZCIsInR4SGFzaCI6IjB4QUJDMSIsInR4SW5kZXgiOjEsImxvZ0luZGV4Ijo0LCJwYXJhbXMiOnsiaWQiOiIxMDAifX0="

func TestParseLine(t *testing.T) {
	input := "ETSLOG EVENT " + taggingRecordCreatedData

	want := &ParsedLine{
		Kind: "EVENT",
		Data: &Log{
			Address:  "0x00000000000000000000000000000000000000aa",
			Event:    "TaggingRecordCreated",
			TxHash:   "0xabc1",
			TxIndex:  1,
			LogIndex: 4,
			Params:   map[string]string{"id": "100"},
		},
	}

	got, err := parseLine(input)
	assert.NoError(t, err)

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseLine(%q) mismatch (-want +got):\n%s", input, diff)
	}
}

func TestParseLine_NoPrefix(t *testing.T) {
	line, err := parseLine("EVENT " + taggingRecordCreatedData)
	assert.NoError(t, err)
	assert.Nil(t, line)

	line, err = parseLine("INFO [10-19|12:00:00.000] Imported new chain segment")
	assert.NoError(t, err)
	assert.Nil(t, line)
}

func TestParseLine_Errors(t *testing.T) {
	examples := []struct {
		input string
		err   error
	}{
		{"ETSLOG", nil},
		{"ETSLOG ", errInvalidFormat},
		{"ETSLOG BLOCK", errInvalidFormat},
		{"ETSLOG FOO BAR", errors.New("invalid data: unsupported kind: FOO")},
		{"ETSLOG BLOCK 12 0xabc", errors.New("invalid data: expected 3 fields, got 2")},
		{"ETSLOG EVENT !!!", errors.New("invalid data: illegal base64 data at input byte 0")},
	}

	for _, example := range examples {
		t.Run(example.input, func(t *testing.T) {
			data, err := parseLine(example.input)

			assert.Nil(t, data)
			if example.err != nil {
				assert.Equal(t, example.err.Error(), err.Error())
			}
		})
	}
}

func TestParseData_BlockHeader(t *testing.T) {
	data, err := parseData("BLOCK", []string{"15000000", "0xABCDEF", "1650000000"})
	assert.NoError(t, err)

	assert.Equal(t, &blockHeader{Number: 15000000, Hash: "0xabcdef", Timestamp: 1650000000}, data)
}

func TestParseData_UnsupportedKind(t *testing.T) {
	data, err := parseData("UNSUPPORTED", []string{taggingRecordCreatedData})

	assert.Equal(t, nil, data)
	assert.ErrorContains(t, err, "unsupported kind: UNSUPPORTED")
}

func TestParseNumber(t *testing.T) {
	examples := []struct {
		input    string
		expected uint64
		err      string
	}{
		{input: "0", expected: uint64(0)},
		{input: "100", expected: uint64(100)},
		{input: "", err: `strconv.ParseUint: parsing "": invalid syntax`},
		{input: "-1", err: `strconv.ParseUint: parsing "-1": invalid syntax`},
		{input: "foobar", err: `strconv.ParseUint: parsing "foobar": invalid syntax`},
	}

	for _, example := range examples {
		number, err := parseNumber(example.input)
		if err != nil {
			assert.Equal(t, example.err, err.Error())
		}
		assert.Equal(t, example.expected, number)
	}
}
