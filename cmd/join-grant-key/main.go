// Package main provides a one-shot utility for join-grant key generation.
//
// It emits the ed25519 keypair used to sign and verify table invite grants.
package main

import (
	"os"

	"github.com/louisbranch/hextable/internal/platform/config"
	"github.com/louisbranch/hextable/internal/tools/joingrant"
)

func main() {
	if err := joingrant.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate join grant key: %v", err)
	}
}
