// Package foundation binds a few classes of Apple's Foundation framework.
//
// The *.objc.go files are generated from the //objc:class interfaces next
// to them; edit the interfaces and rerun go generate.
package foundation

//go:generate go run github.com/hsfzxjy/objc/cmd/objc-gen .
