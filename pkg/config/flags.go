package config

type Flags struct {
	Build        bool
	BuildFile    string
	DryRun       bool
	PrintVersion bool
	Push         bool
	Verbose      bool
}
