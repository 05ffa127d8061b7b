// Package rpm implements the package assembler: manifest expansion, canonical
// sorting, header population, lead writing and the binary/source package drivers
// that tie them together over an external archiver/compressor pipeline.
package rpm
