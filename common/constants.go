package common

const (
	SrcFileExtension = ".clike"
	ConfigFileName   = "clike.toml"
	Version          = "0.1.0"
)
