// Package hclconfig loads the optional settings file. The file is written
// in HCL and supplies defaults that command-line flags can still override.
package hclconfig
