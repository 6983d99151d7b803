// Package bson provides a BSON serializer.
package bson

import (
	"github.com/zoobzio/missive"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

// bsonSerializer implements missive.Serializer for BSON.
// BSON bodies are documents: top-level values must be structs or maps.
type bsonSerializer struct{}

// New returns a BSON serializer. Untyped targets decode into bson.M.
func New() missive.Serializer {
	return &bsonSerializer{}
}

// ContentType returns the MIME type for BSON.
func (s *bsonSerializer) ContentType() string {
	return "application/bson"
}

// Marshal encodes v as a BSON document.
func (s *bsonSerializer) Marshal(v any) ([]byte, error) {
	return bson.Marshal(v)
}

// Unmarshal decodes a BSON document into v.
func (s *bsonSerializer) Unmarshal(data []byte, v any) error {
	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(data))
	if err != nil {
		return err
	}
	dec.DefaultDocumentM()
	return dec.Decode(v)
}
