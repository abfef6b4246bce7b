// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package cli

var (
	// root
	verbose bool
	// root
	profile bool
	// root
	pprofPort uint16
	// root
	guessRate float64
	// root
	rules []string
	// analyze, compliance
	interactive bool
	// analyze, batch
	jsonOutput bool
	// batch
	inputFile string
	// batch
	outFile string
	// batch
	remoteURL string
	// batch
	workers int
	// batch
	overwrite bool
	// generate
	length int
	// generate
	quantity int
	// generate
	noUppercase bool
	// generate
	noLowercase bool
	// generate
	noDigits bool
	// generate
	noSymbols bool
	// generate
	allowSimilar bool
	// generate
	excludeAmbiguous bool
	// serve
	selfTLS bool
	// serve
	tlsCert string
	// serve
	tlsKey string
	// serve
	port uint16
)
