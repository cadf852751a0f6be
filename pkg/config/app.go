package config

var AppVersion = "DEVELOPMENT"

const (
	AppName  = "lunaro"
	LogFile  = "lunaro.log"
	CfgFile  = "lunaro.conf"
	FavsFile = "favorites.txt"
)
