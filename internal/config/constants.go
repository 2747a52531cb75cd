package config

// Version is stamped at build time with:
// -ldflags "-X github.com/funvibe/funseal/internal/config.Version=v1.2.3"
var Version = "dev"

const SourceFileExt = ".seal"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".seal", ".funseal"}

// Built-in function names
const (
	PrintFuncName  = "print"
	LenFuncName    = "len"
	TypeOfFuncName = "typeOf"
)

// Reserved method names
const (
	InitMethodName = "init"
)
