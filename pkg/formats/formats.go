// Package formats provides parsers for the Wavefront OBJ and MTL text formats.
package formats

// Note: OBJ (geometry) is implemented in obj.go
// Note: MTL (materials) is implemented in mtl.go
// Both share the line tokenizer in directive.go.
