package exam

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinQuestions = 1
	MaxQuestions = 20
)

const (
	msgExamFieldsRequired   = "Both topic and questionCount are required."
	msgQuestionCountRange   = "questionCount must be between 1 and 20."
	msgExamQuestionsMissing = "examQuestions is required to generate an answer key."
)

// ExamRequest is a validated exam generation request.
type ExamRequest struct {
	Topic         string
	QuestionCount int
}

// AnswerKeyRequest is a validated answer key request. Topic may be empty.
type AnswerKeyRequest struct {
	ExamQuestions string
	Topic         string
}

// ParseExamRequest validates a raw JSON body. A body that is not a JSON
// object is handled like an empty object.
func ParseExamRequest(body []byte) (ExamRequest, error) {
	fields := decodeFields(body)

	topic := strings.TrimSpace(stringField(fields["topic"]))
	count, ok := numberField(fields["questionCount"])
	if topic == "" || !ok || math.IsInf(count, 0) || count != math.Trunc(count) {
		return ExamRequest{}, newValidationError(msgExamFieldsRequired)
	}
	if count < MinQuestions || count > MaxQuestions {
		return ExamRequest{}, newValidationError(msgQuestionCountRange)
	}

	return ExamRequest{Topic: topic, QuestionCount: int(count)}, nil
}

// ParseAnswerKeyRequest validates a raw JSON body for answer key generation.
func ParseAnswerKeyRequest(body []byte) (AnswerKeyRequest, error) {
	fields := decodeFields(body)

	questions := strings.TrimSpace(stringField(fields["examQuestions"]))
	if questions == "" {
		return AnswerKeyRequest{}, newValidationError(msgExamQuestionsMissing)
	}

	return AnswerKeyRequest{
		ExamQuestions: questions,
		Topic:         strings.TrimSpace(stringField(fields["topic"])),
	}, nil
}

type rawFields map[string]json.RawMessage

func decodeFields(body []byte) rawFields {
	var fields rawFields
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return rawFields{}
	}
	return fields
}

// stringField coerces scalars to their string form. Null, absent, objects and
// arrays become empty.
func stringField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		return string(raw)
	case 'n', '{', '[':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
}

// numberField coerces a value to a number. Null, booleans and blank strings
// follow the usual JSON-to-number coercion (0, 1/0, 0); absent fields,
// unparsable strings, objects and arrays are not numbers.
func numberField(raw json.RawMessage) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}
	switch raw[0] {
	case 'n':
		return 0, true
	case 't':
		return 1, true
	case 'f':
		return 0, true
	case '{', '[':
		return 0, false
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return 0, false
		}
		return f, true
	}
}
