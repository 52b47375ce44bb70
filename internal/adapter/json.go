package adapter

import (
	"encoding/json"
)

// JSON abstracts event and notification payload encoding so tests can force
// marshalling failures
//
//go:generate mockgen -source=json.go -destination=../mocks/json.go -package=mocks -mock_names=JSON=MockJSON
type JSON interface {
	Marshal(v interface{}) ([]byte, error)
}

// RealJSON encodes with the standard encoding/json package
type RealJSON struct{}

func NewJSON() JSON {
	return &RealJSON{}
}

func (j *RealJSON) Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
