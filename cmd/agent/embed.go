package main

import _ "embed"

// embeddedConfig is the lowest configuration layer above the built-in
// defaults. Installers can replace embed_config.yaml before building to
// ship a host-specific server URL or host id.
//
//go:embed embed_config.yaml
var embeddedConfig []byte
