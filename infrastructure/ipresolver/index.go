package ipresolver

import (
	"verifid.io/infrastructure/ipresolver/maxmind"
	"verifid.io/infrastructure/ipresolver/types"
)

var IPResolverInstance types.IPResolver = &maxmind.MaxMindIPResolver{}
