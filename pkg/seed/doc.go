// Package seed produces the initial field registry for a widget from a YAML
// seed document or from the request body schema of an OpenAPI operation.
// Documents are read through a Loader that understands file, fs.FS and HTTP
// sources.
package seed
