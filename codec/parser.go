package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/sugawarayuuta/sonnet"
)

const (
	etsLogPrefix = "ETSLOG "

	MsgBegin = "BEGIN"
	MsgBlock = "BLOCK"
	MsgEvent = "EVENT"
	MsgEnd   = "END"
)

var (
	errInvalidFormat   = errors.New("invalid format")
	errInvalidData     = errors.New("invalid data")
	errUnsupportedKind = errors.New("unsupported kind")
)

type ParsedLine struct {
	Kind string
	Data interface{}
}

type blockHeader struct {
	Number    uint64
	Hash      string
	Timestamp uint64
}

// ETSLOG BEGIN <NUMBER>
// ETSLOG BLOCK <NUMBER> <HASH> <TIMESTAMP>
// ETSLOG EVENT <DATA>
// ETSLOG END <NUMBER>
func parseLine(line string) (*ParsedLine, error) {
	if !strings.HasPrefix(line, etsLogPrefix) {
		return nil, nil
	}

	tokens := strings.Split(line[len(etsLogPrefix):], " ")
	if len(tokens) < 2 {
		return nil, errInvalidFormat
	}

	kind := tokens[0]

	data, err := parseData(kind, tokens[1:])
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errInvalidData, err)
	}

	return &ParsedLine{
		Kind: kind,
		Data: data,
	}, nil
}

func parseData(kind string, tokens []string) (interface{}, error) {
	switch kind {
	case MsgBegin, MsgEnd:
		return parseNumber(tokens[0])
	case MsgBlock:
		return parseBlockHeader(tokens)
	case MsgEvent:
		return parseLog(tokens[0])
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedKind, kind)
	}
}

func parseNumber(str string) (uint64, error) {
	return strconv.ParseUint(str, 10, 64)
}

func parseBlockHeader(tokens []string) (*blockHeader, error) {
	if len(tokens) != 3 {
		return nil, fmt.Errorf("expected 3 fields, got %d", len(tokens))
	}

	number, err := parseNumber(tokens[0])
	if err != nil {
		return nil, err
	}
	timestamp, err := parseNumber(tokens[2])
	if err != nil {
		return nil, err
	}

	return &blockHeader{
		Number:    number,
		Hash:      strings.ToLower(tokens[1]),
		Timestamp: timestamp,
	}, nil
}

func parseLog(data string) (*Log, error) {
	buf, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}

	log := &Log{}
	if err := sonnet.Unmarshal(buf, log); err != nil {
		return nil, err
	}

	log.Address = strings.ToLower(log.Address)
	log.TxHash = strings.ToLower(log.TxHash)
	return log, nil
}
