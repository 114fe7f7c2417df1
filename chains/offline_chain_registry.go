package chains

// Provides offline chain data for applications where we don't need everything under the sun
type OfflineChainRegistry struct {
	ChainIDToData map[string]*ChainData
}

func NewOfflineChainRegistry() *OfflineChainRegistry {
	chainRegistry := &OfflineChainRegistry{
		ChainIDToData: make(map[string]*ChainData),
	}

	chainRegistry.addToRegistry("axelar", "axelar-dojo-1", "axelar", "uaxl")
	chainRegistry.addToRegistry("cosmoshub", "cosmoshub-4", "cosmos", "uatom")
	chainRegistry.addToRegistry("gravitybridge", "gravity-bridge-3", "gravity", "ugraviton")
	chainRegistry.addToRegistry("juno", "juno-1", "juno", "ujuno")
	chainRegistry.addToRegistry("mars", "mars-1", "mars", "umars")
	chainRegistry.addToRegistry("neutron", "neutron-1", "neutron", "untrn")
	chainRegistry.addToRegistry("osmosis", "osmosis-1", "osmo", "uosmo")
	chainRegistry.addToRegistry("sommelier", "sommelier-3", "somm", "usomm")
	chainRegistry.addToRegistry("stride", "stride-1", "stride", "ustrd")

	return chainRegistry
}

// ChainForChainID returns the chain registered under the given chain ID, if any.
func (cr *OfflineChainRegistry) ChainForChainID(chainID string) (*ChainData, bool) {
	chainData, found := cr.ChainIDToData[chainID]
	return chainData, found
}

func (cr *OfflineChainRegistry) addToRegistry(
	chainName string,
	chainID string,
	accountPrefix string,
	nativeToken string,
) {
	chainData := &ChainData{
		ChainID:       chainID,
		ChainName:     chainName,
		AccountPrefix: accountPrefix,
		NativeToken:   nativeToken,
	}

	cr.ChainIDToData[chainID] = chainData
}
