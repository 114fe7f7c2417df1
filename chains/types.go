package chains

// ChainData is the static description of a chain needed to address and pay for transactions on it.
type ChainData struct {
	ChainName     string
	ChainID       string
	AccountPrefix string
	NativeToken   string
}

// ValidatorPrefixForAccountPrefix follows the cosmos-sdk convention of `<prefix>valoper`.
func ValidatorPrefixForAccountPrefix(accountPrefix string) string {
	return accountPrefix + "valoper"
}
