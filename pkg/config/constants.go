package config

const (
	EnvPrefix = "MUEBLESRENT"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MUEBLESRENT_DB_DSN"
	EnvDBHost = "MUEBLESRENT_DB_HOST"
	EnvDBUser = "MUEBLESRENT_DB_USER"
	EnvDBName = "MUEBLESRENT_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
