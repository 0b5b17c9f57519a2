package conf

// EnvironmentEnum runtime environment
type EnvironmentEnum int

const (
	LocalEnvironmentEnum EnvironmentEnum = iota
	MainnetEnvironmentEnum
	TestnetEnvironmentEnum
)

// SystemEnvironmentEnum current environment, set from the -env flag before InitConfig
var SystemEnvironmentEnum = MainnetEnvironmentEnum

// GetYaml return the config file path for the current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case LocalEnvironmentEnum:
		return "./config_loc.yaml"
	case TestnetEnvironmentEnum:
		return "./config_testnet.yaml"
	default:
		return "./config.yaml"
	}
}
