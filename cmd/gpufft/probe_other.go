//go:build !unix

package main

import "github.com/pkg/errors"

func hostChecks(library string) []check {
	return []check{
		{"native engines built", cgoCheck()},
		{"platform", errors.New("the GPU engine only runs on Raspberry Pi Linux")},
	}
}
